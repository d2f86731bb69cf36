// Package ai calls an external generative text service to pre-fill a job
// posting form from pasted JD text. The adapter is a pure transform with no
// state; the model call sits behind a small interface so tests can stub it.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/logger"

	"github.com/ollama/ollama/api"
)

var (
	ErrUnavailable     = errors.New("ai classification service is not available")
	ErrInvalidResponse = errors.New("ai returned invalid JSON")
)

const promptTemplate = `Extract structured information from the following job description text.
Return a JSON object with the following fields:
- title: Job title (string)
- client_name: Client/Company name (string, or null if not mentioned)
- experience_required: Required years of experience (float number, default to 0 if not mentioned)
- tech_required: List of required technologies/skills (array of strings, empty array if none)
- location: Job location (string, or null if not mentioned)
- visa_required: Visa requirements (string, or null if not mentioned)
- start_date: Start date or availability date in ISO format YYYY-MM-DD (string, or null if not mentioned)
- job_type: Job type - one of: "Contract", "Full-time", "C2C", "W2" (string, default to null if not clear)
- jd_summary: Brief summary of the job description (string, or null)
- additional_notes: Any additional notes or requirements (string, or null)

Job Description Text:
%s

Return ONLY valid JSON, no additional text or explanation.`

type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// generator is the model call-out.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ollamaGenerator struct {
	api     *api.Client
	model   string
	timeout time.Duration
}

func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]interface{}{
			// low temperature for consistent extraction
			"temperature": 0.3,
			"num_predict": 2000,
		},
	}

	var out strings.Builder
	err := g.api.Generate(ctx, req, func(r api.GenerateResponse) error {
		out.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return out.String(), nil
}

// Classifier implements domain.JDClassifier.
type Classifier struct {
	gen generator
}

// NewClassifier builds an Ollama-backed classifier. An empty base URL yields
// an unconfigured classifier whose Classify fails with ErrUnavailable.
func NewClassifier(cfg Config) (*Classifier, error) {
	if cfg.BaseURL == "" {
		return &Classifier{}, nil
	}
	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ai base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &Classifier{
		gen: &ollamaGenerator{
			api:     api.NewClient(u, httpClient),
			model:   cfg.Model,
			timeout: cfg.Timeout,
		},
	}, nil
}

func (c *Classifier) Available() bool {
	return c.gen != nil
}

// Classify sends the fixed prompt, strips markdown fences from the reply,
// parses the JSON object and normalizes field values.
func (c *Classifier) Classify(ctx context.Context, text string) (*domain.JobClassification, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}

	raw, err := c.gen.Generate(ctx, fmt.Sprintf(promptTemplate, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	body := stripFences(raw)

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		logger.Log.Error("Failed to parse classification response", "error", err, "body", snippet(body))
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	result := &domain.JobClassification{
		Title:              strings.TrimSpace(asString(fields["title"])),
		Description:        text,
		ClientName:         optString(fields["client_name"]),
		ExperienceRequired: asFloat(fields["experience_required"]),
		TechRequired:       asStringList(fields["tech_required"]),
		Location:           optString(fields["location"]),
		VisaRequired:       optString(fields["visa_required"]),
		JDSummary:          optString(fields["jd_summary"]),
		AdditionalNotes:    optString(fields["additional_notes"]),
		Status:             domain.JobStatusOpen,
	}

	if result.Title == "" {
		result.Title = "Untitled Position"
	}
	if s := asString(fields["job_type"]); s != "" {
		result.JobType = domain.MatchJobType(s)
	}
	if s := asString(fields["start_date"]); s != "" {
		if t, ok := parseDate(s); ok {
			result.StartDate = &t
		} else {
			logger.Log.Warn("Discarding unparsable start_date", "value", s)
		}
	}

	logger.Log.Info("Classified job description", "title", result.Title)
	return result, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	}
	if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func optString(v interface{}) *string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return 0
}

func asStringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func snippet(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
