package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Role identifies which account collection an account lives in.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleRecruiter  Role = "RECRUITER"
	RoleConsultant Role = "CONSULTANT"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleRecruiter, RoleConsultant:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

// RoleSatisfies reports whether role passes a gate allowing the given roles.
// ADMIN satisfies every gate.
func RoleSatisfies(role Role, allowed ...Role) bool {
	if role == RoleAdmin {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// Account is a credential-bearing identity with exactly one role. It lives in
// the admins, recruiters or consultants table depending on Role.
type Account struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"is_active"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateUser struct {
	Email    string
	Name     string
	Password string
	Role     Role
	IsActive bool
}

type UpdateUser struct {
	Name     *string
	IsActive *bool
}

// SyncOutcome reports the result of the best-effort mirror into the shared
// "users" view. A degraded outcome never fails the primary write; it is
// surfaced so callers can log or expose the inconsistency.
type SyncOutcome struct {
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}

func SyncOK() SyncOutcome { return SyncOutcome{} }

func SyncDegraded(reason string) SyncOutcome {
	return SyncOutcome{Degraded: true, Reason: reason}
}

// AccountRepository is the per-role account table access.
type AccountRepository interface {
	Create(ctx context.Context, acc *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetAll(ctx context.Context, skip, limit int) ([]Account, error)
	Update(ctx context.Context, id string, upd UpdateUser) (*Account, error)
	Delete(ctx context.Context, id string) error
}

// UserMirror maintains the shared "users" view collection. All methods are
// best-effort; failures must be reported, not escalated.
type UserMirror interface {
	Upsert(ctx context.Context, acc *Account) error
	Remove(ctx context.Context, id string) error
}

// CredentialStore spans the three role tables plus the users mirror.
type CredentialStore interface {
	// CreateUser checks all three tables for the email before inserting into
	// the role table. The check-then-insert is not transactional; concurrent
	// registrations in different role tables can both pass the check.
	CreateUser(ctx context.Context, acc *Account) (SyncOutcome, error)
	// FindByEmail probes recruiters, then consultants, then admins and
	// returns the first match.
	FindByEmail(ctx context.Context, email string) (*Account, error)
	AccountByID(ctx context.Context, role Role, id string) (*Account, error)
	ListUsers(ctx context.Context, role *Role, skip, limit int) ([]Account, error)
	UpdateUser(ctx context.Context, role Role, id string, upd UpdateUser) (*Account, SyncOutcome, error)
	DeleteUser(ctx context.Context, role Role, id string) (SyncOutcome, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in CreateUser) (*Account, error)
	Login(ctx context.Context, email, password string) (string, *Account, error)
	Refresh(ctx context.Context, acc *Account) (string, error)
	// ResolveAccount maps a verified token subject back to an account.
	ResolveAccount(ctx context.Context, email string) (*Account, error)
	ListUsers(ctx context.Context, role *Role, skip, limit int) ([]Account, error)
	UpdateUser(ctx context.Context, role Role, id string, upd UpdateUser) (*Account, error)
	DeleteUser(ctx context.Context, role Role, id string) error
}
