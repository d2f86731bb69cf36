package domain

import (
	"context"
	"io"
	"time"
)

// ConsultantProfile holds extended consultant attributes, one-to-one with a
// consultant account. Name, Email and Phone are merged from the account at
// read time.
type ConsultantProfile struct {
	ID                  string   `json:"id"`
	ConsultantID        string   `json:"consultant_id"`
	ExperienceYears     float64  `json:"experience_years"`
	TechStack           []string `json:"tech_stack"`
	Available           bool     `json:"available"`
	Location            *string  `json:"location,omitempty"`
	VisaStatus          *string  `json:"visa_status,omitempty"`
	Rating              *float64 `json:"rating,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
	ProfessionalSummary *string  `json:"professional_summary,omitempty"`
	LinkedinURL         *string  `json:"linkedin_url,omitempty"`
	GithubURL           *string  `json:"github_url,omitempty"`
	PortfolioURL        *string  `json:"portfolio_url,omitempty"`
	// Free-form: degree, university, graduation_year.
	Education      map[string]interface{} `json:"education,omitempty"`
	Certifications []string               `json:"certifications"`
	// Skill name to proficiency level.
	TechStackProficiency map[string]string `json:"tech_stack_proficiency,omitempty"`
	ResumePath           *string           `json:"resume_path,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`

	// Joined account data
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ConsultantProfileUpdate carries partial updates; nil fields (including nil
// maps) keep the stored value.
type ConsultantProfileUpdate struct {
	ExperienceYears      *float64               `json:"experience_years"`
	TechStack            *[]string              `json:"tech_stack"`
	Available            *bool                  `json:"available"`
	Location             *string                `json:"location"`
	VisaStatus           *string                `json:"visa_status"`
	Notes                *string                `json:"notes"`
	ProfessionalSummary  *string                `json:"professional_summary"`
	LinkedinURL          *string                `json:"linkedin_url"`
	GithubURL            *string                `json:"github_url"`
	PortfolioURL         *string                `json:"portfolio_url"`
	Education            map[string]interface{} `json:"education"`
	Certifications       *[]string              `json:"certifications"`
	TechStackProficiency map[string]string      `json:"tech_stack_proficiency"`
	Phone                *string                `json:"phone" binding:"omitempty,valid_phone"`
	// Set internally by resume uploads, never from a request body.
	ResumePath *string `json:"-"`
}

// SubmissionStats summarizes a consultant's application pipeline.
type SubmissionStats struct {
	Total        int            `json:"total"`
	Pending      int            `json:"pending"`
	Interviews   int            `json:"interviews"`
	Offers       int            `json:"offers"`
	Joined       int            `json:"joined"`
	Rejected     int            `json:"rejected"`
	Withdrawn    int            `json:"withdrawn"`
	SuccessRate  float64        `json:"success_rate"`
	Recent30Days int            `json:"recent_30_days"`
	ByStatus     map[string]int `json:"by_status"`
}

type ConsultantProfileRepository interface {
	GetByConsultantID(ctx context.Context, consultantID string) (*ConsultantProfile, error)
	// Upsert sets the provided fields; consultant_id, created_at, empty tech
	// stack and zero experience are populated only on first insert. A phone
	// update additionally writes through to the consultants account table,
	// best-effort.
	Upsert(ctx context.Context, consultantID string, upd ConsultantProfileUpdate) (*ConsultantProfile, error)
	GetAll(ctx context.Context, skip, limit int) ([]ConsultantProfile, error)
}

type ConsultantUsecase interface {
	GetMyProfile(ctx context.Context, acc *Account) (*ConsultantProfile, error)
	UpdateMyProfile(ctx context.Context, acc *Account, upd ConsultantProfileUpdate) (*ConsultantProfile, error)
	List(ctx context.Context, skip, limit int) ([]ConsultantProfile, error)
	GetByID(ctx context.Context, consultantID string) (*ConsultantProfile, error)
	UploadResume(ctx context.Context, acc *Account, filename string, size int64, r io.Reader) (string, error)
	ResumePath(ctx context.Context, consultantID string) (string, error)
	Stats(ctx context.Context, acc *Account) (*SubmissionStats, error)
}
