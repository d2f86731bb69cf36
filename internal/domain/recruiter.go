package domain

import (
	"context"
	"time"
)

// RecruiterProfile holds extended recruiter attributes, one-to-one with a
// recruiter account. Name and Email are merged from the account at read time.
type RecruiterProfile struct {
	ID          string    `json:"id"`
	RecruiterID string    `json:"recruiter_id"`
	CompanyName *string   `json:"company_name,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	LinkedinURL *string   `json:"linkedin_url,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Location    *string   `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined account data
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type RecruiterProfileUpdate struct {
	CompanyName *string `json:"company_name"`
	Phone       *string `json:"phone" binding:"omitempty,valid_phone"`
	LinkedinURL *string `json:"linkedin_url"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
}

type RecruiterProfileRepository interface {
	GetByRecruiterID(ctx context.Context, recruiterID string) (*RecruiterProfile, error)
	// Upsert sets the provided fields, populating recruiter_id and created_at
	// only on first insert.
	Upsert(ctx context.Context, recruiterID string, upd RecruiterProfileUpdate) (*RecruiterProfile, error)
}

type RecruiterUsecase interface {
	GetMyProfile(ctx context.Context, acc *Account) (*RecruiterProfile, error)
	UpdateMyProfile(ctx context.Context, acc *Account, upd RecruiterProfileUpdate) (*RecruiterProfile, error)
}
