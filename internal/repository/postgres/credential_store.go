package postgres

import (
	"context"
	"errors"
	"fmt"

	"consultant-tracker-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// credentialStore spans the three role tables plus the users mirror. Mirror
// writes are best-effort: a failure degrades the outcome but never rolls back
// the primary write.
type credentialStore struct {
	admins      domain.AccountRepository
	recruiters  domain.AccountRepository
	consultants domain.AccountRepository
	mirror      domain.UserMirror
}

func NewCredentialStore(db *pgxpool.Pool) domain.CredentialStore {
	return &credentialStore{
		admins:      NewAccountRepository(db, domain.RoleAdmin),
		recruiters:  NewAccountRepository(db, domain.RoleRecruiter),
		consultants: NewAccountRepository(db, domain.RoleConsultant),
		mirror:      NewUserMirror(db),
	}
}

func (s *credentialStore) repoFor(role domain.Role) (domain.AccountRepository, error) {
	switch role {
	case domain.RoleAdmin:
		return s.admins, nil
	case domain.RoleRecruiter:
		return s.recruiters, nil
	case domain.RoleConsultant:
		return s.consultants, nil
	}
	return nil, fmt.Errorf("unknown role: %q", role)
}

// CreateUser checks all three tables for the email before inserting into the
// role table. The check and the insert are separate statements; concurrent
// registrations under different roles can both pass the check.
func (s *credentialStore) CreateUser(ctx context.Context, acc *domain.Account) (domain.SyncOutcome, error) {
	if existing, err := s.FindByEmail(ctx, acc.Email); err == nil && existing != nil {
		return domain.SyncOK(), domain.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.SyncOK(), err
	}

	repo, err := s.repoFor(acc.Role)
	if err != nil {
		return domain.SyncOK(), err
	}
	if err := repo.Create(ctx, acc); err != nil {
		return domain.SyncOK(), err
	}

	if err := s.mirror.Upsert(ctx, acc); err != nil {
		return domain.SyncDegraded(fmt.Sprintf("users mirror insert failed: %v", err)), nil
	}
	return domain.SyncOK(), nil
}

// FindByEmail probes recruiters, then consultants, then admins and returns
// the first match.
func (s *credentialStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	for _, repo := range []domain.AccountRepository{s.recruiters, s.consultants, s.admins} {
		acc, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return acc, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, domain.ErrNotFound
}

func (s *credentialStore) AccountByID(ctx context.Context, role domain.Role, id string) (*domain.Account, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

func (s *credentialStore) ListUsers(ctx context.Context, role *domain.Role, skip, limit int) ([]domain.Account, error) {
	if role != nil {
		repo, err := s.repoFor(*role)
		if err != nil {
			return nil, err
		}
		return repo.GetAll(ctx, skip, limit)
	}

	// No role filter: concatenate all three tables in role order. Pagination
	// applies per table, mirroring per-collection scans.
	all := []domain.Account{}
	for _, repo := range []domain.AccountRepository{s.admins, s.recruiters, s.consultants} {
		accounts, err := repo.GetAll(ctx, skip, limit)
		if err != nil {
			return nil, err
		}
		all = append(all, accounts...)
	}
	return all, nil
}

func (s *credentialStore) UpdateUser(ctx context.Context, role domain.Role, id string, upd domain.UpdateUser) (*domain.Account, domain.SyncOutcome, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return nil, domain.SyncOK(), err
	}
	acc, err := repo.Update(ctx, id, upd)
	if err != nil {
		return nil, domain.SyncOK(), err
	}
	if err := s.mirror.Upsert(ctx, acc); err != nil {
		return acc, domain.SyncDegraded(fmt.Sprintf("users mirror update failed: %v", err)), nil
	}
	return acc, domain.SyncOK(), nil
}

func (s *credentialStore) DeleteUser(ctx context.Context, role domain.Role, id string) (domain.SyncOutcome, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return domain.SyncOK(), err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return domain.SyncOK(), err
	}
	if err := s.mirror.Remove(ctx, id); err != nil {
		return domain.SyncDegraded(fmt.Sprintf("users mirror delete failed: %v", err)), nil
	}
	return domain.SyncOK(), nil
}
