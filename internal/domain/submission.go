package domain

import (
	"context"
	"io"
	"time"
)

// SubmissionStatus enumerates the application pipeline states. Transitions
// are unrestricted: any status may move to any other.
type SubmissionStatus string

const (
	StatusSubmitted SubmissionStatus = "SUBMITTED"
	StatusInterview SubmissionStatus = "INTERVIEW"
	StatusOffer     SubmissionStatus = "OFFER"
	StatusJoined    SubmissionStatus = "JOINED"
	StatusRejected  SubmissionStatus = "REJECTED"
	StatusOnHold    SubmissionStatus = "ON_HOLD"
	StatusWithdrawn SubmissionStatus = "WITHDRAWN"
)

// AllSubmissionStatuses in display order.
var AllSubmissionStatuses = []SubmissionStatus{
	StatusSubmitted, StatusInterview, StatusOffer, StatusJoined,
	StatusRejected, StatusOnHold, StatusWithdrawn,
}

func (s SubmissionStatus) Valid() bool {
	for _, v := range AllSubmissionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Submission is a consultant's application to a job. recruiter_id is copied
// from the job at creation time. Consultant and job fields are merged at
// read time.
type Submission struct {
	ID            string           `json:"id"`
	JDID          string           `json:"jd_id"`
	ConsultantID  string           `json:"consultant_id"`
	RecruiterID   string           `json:"recruiter_id"`
	Comments      *string          `json:"comments,omitempty"`
	ResumePath    string           `json:"resume_path"`
	Status        SubmissionStatus `json:"status"`
	RecruiterRead bool             `json:"recruiter_read"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Joined consultant and job data
	ConsultantName       string   `json:"consultant_name,omitempty"`
	ConsultantEmail      string   `json:"consultant_email,omitempty"`
	JDTitle              string   `json:"jd_title,omitempty"`
	JDLocation           *string  `json:"jd_location,omitempty"`
	JDExperienceRequired *float64 `json:"jd_experience_required,omitempty"`
	JDTechRequired       []string `json:"jd_tech_required,omitempty"`
	JDDescription        *string  `json:"jd_description,omitempty"`
}

type SubmissionRepository interface {
	Create(ctx context.Context, sub *Submission) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	GetByConsultant(ctx context.Context, consultantID string) ([]Submission, error)
	// GetAll returns all submissions, or only those owned by recruiterID
	// when it is non-empty. Newest first.
	GetAll(ctx context.Context, recruiterID string) ([]Submission, error)
	UpdateStatus(ctx context.Context, id string, status SubmissionStatus) (*Submission, error)
}

type SubmissionUsecase interface {
	// Apply persists the resume file first, then inserts the submission. A
	// failed insert leaves the file orphaned; there is no compensating
	// cleanup.
	Apply(ctx context.Context, acc *Account, jdID, comments, filename string, size int64, r io.Reader) (*Submission, error)
	MySubmissions(ctx context.Context, acc *Account) ([]Submission, error)
	ListAll(ctx context.Context, acc *Account) ([]Submission, error)
	UpdateStatus(ctx context.Context, acc *Account, id string, status SubmissionStatus) (*Submission, error)
}
