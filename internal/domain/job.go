package domain

import (
	"context"
	"io"
	"strings"
	"time"
)

// Job status values
const (
	JobStatusOpen   = "OPEN"
	JobStatusClosed = "CLOSED"
)

// JobType enumerates engagement types.
type JobType string

const (
	JobTypeContract JobType = "Contract"
	JobTypeFullTime JobType = "Full-time"
	JobTypeC2C      JobType = "C2C"
	JobTypeW2       JobType = "W2"
)

// MatchJobType resolves a free-form string against the enum,
// case-insensitively. Returns nil when nothing matches.
func MatchJobType(s string) *JobType {
	for _, jt := range []JobType{JobTypeContract, JobTypeFullTime, JobTypeC2C, JobTypeW2} {
		if strings.EqualFold(string(jt), s) {
			v := jt
			return &v
		}
	}
	return nil
}

// JobDescription is a job posting owned by the creating recruiter. Recruiter
// name and email are merged from the account at read time.
type JobDescription struct {
	ID                 string     `json:"id"`
	RecruiterID        string     `json:"recruiter_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	ClientName         *string    `json:"client_name,omitempty"`
	ExperienceRequired float64    `json:"experience_required"`
	TechRequired       []string   `json:"tech_required"`
	Location           *string    `json:"location,omitempty"`
	VisaRequired       *string    `json:"visa_required,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	JobType            *JobType   `json:"job_type,omitempty"`
	JDSummary          *string    `json:"jd_summary,omitempty"`
	AdditionalNotes    *string    `json:"additional_notes,omitempty"`
	Status             string     `json:"status"`
	JDFilePath         *string    `json:"jd_file_path,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Joined recruiter data
	RecruiterName  string `json:"recruiter_name,omitempty"`
	RecruiterEmail string `json:"recruiter_email,omitempty"`
}

type JobUpdate struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	ClientName         *string    `json:"client_name"`
	ExperienceRequired *float64   `json:"experience_required"`
	TechRequired       *[]string  `json:"tech_required"`
	Location           *string    `json:"location"`
	VisaRequired       *string    `json:"visa_required"`
	StartDate          *time.Time `json:"start_date"`
	JobType            *JobType   `json:"job_type"`
	JDSummary          *string    `json:"jd_summary"`
	AdditionalNotes    *string    `json:"additional_notes"`
	Status             *string    `json:"status"`
	// Set internally by JD file uploads, never from a request body.
	JDFilePath *string `json:"-"`
}

// JobClassification is the structured result of AI classification of raw JD
// text. Description carries the original input text.
type JobClassification struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	ClientName         *string    `json:"client_name"`
	ExperienceRequired float64    `json:"experience_required"`
	TechRequired       []string   `json:"tech_required"`
	Location           *string    `json:"location"`
	VisaRequired       *string    `json:"visa_required"`
	StartDate          *time.Time `json:"start_date"`
	JobType            *JobType   `json:"job_type"`
	JDSummary          *string    `json:"jd_summary"`
	AdditionalNotes    *string    `json:"additional_notes"`
	Status             string     `json:"status"`
}

// JDClassifier extracts structured fields from raw job description text via
// an external generative text service. Stateless and swappable.
type JDClassifier interface {
	Available() bool
	Classify(ctx context.Context, text string) (*JobClassification, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *JobDescription) error
	GetByID(ctx context.Context, id string) (*JobDescription, error)
	GetAll(ctx context.Context, status string, skip, limit int) ([]JobDescription, error)
	Update(ctx context.Context, id string, upd JobUpdate) (*JobDescription, error)
}

type JobUsecase interface {
	Create(ctx context.Context, acc *Account, job *JobDescription) (*JobDescription, error)
	// List hides non-OPEN jobs from consultants regardless of the filter.
	List(ctx context.Context, acc *Account, status string, skip, limit int) ([]JobDescription, error)
	Get(ctx context.Context, id string) (*JobDescription, error)
	// Update rejects callers whose id differs from the stored recruiter_id,
	// admins included.
	Update(ctx context.Context, acc *Account, id string, upd JobUpdate) (*JobDescription, error)
	// UploadJDFile attaches the source JD document, owner-only like Update.
	UploadJDFile(ctx context.Context, acc *Account, id, filename string, size int64, r io.Reader) (*JobDescription, error)
	// JDFilePath resolves the attached document to a servable file path.
	JDFilePath(ctx context.Context, id string) (string, error)
	Classify(ctx context.Context, text string) (*JobClassification, error)
}
