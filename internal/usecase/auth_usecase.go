package usecase

import (
	"context"
	"errors"
	"time"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/apperror"
	"consultant-tracker-backend/pkg/logger"
	"consultant-tracker-backend/pkg/password"
	"consultant-tracker-backend/pkg/token"

	"github.com/google/uuid"
)

type authUsecase struct {
	store  domain.CredentialStore
	tokens *token.Manager
}

func NewAuthUsecase(store domain.CredentialStore, tokens *token.Manager) domain.AuthUsecase {
	return &authUsecase{store: store, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, in domain.CreateUser) (*domain.Account, error) {
	if password.TooLong(in.Password) {
		return nil, apperror.BadRequest("Password must not exceed 72 bytes")
	}
	hashed, err := password.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	acc := &domain.Account{
		ID:             uuid.NewString(),
		Email:          in.Email,
		Name:           in.Name,
		Role:           in.Role,
		IsActive:       in.IsActive,
		HashedPassword: hashed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	sync, err := u.store.CreateUser(ctx, acc)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal(err)
	}
	if sync.Degraded {
		logger.Log.Warn("Account created with degraded users sync",
			"account_id", acc.ID, "reason", sync.Reason)
	}

	logger.Log.Info("Account registered", "account_id", acc.ID, "role", acc.Role)
	return acc, nil
}

func (u *authUsecase) Login(ctx context.Context, email, pw string) (string, *domain.Account, error) {
	acc, err := u.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, apperror.Unauthorized("Incorrect email or password")
		}
		return "", nil, apperror.Internal(err)
	}
	if !password.Verify(pw, acc.HashedPassword) {
		return "", nil, apperror.Unauthorized("Incorrect email or password")
	}
	if !acc.IsActive {
		return "", nil, apperror.Unauthorized("User account is deactivated")
	}

	tok, err := u.tokens.Issue(acc.Email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	return tok, acc, nil
}

func (u *authUsecase) Refresh(ctx context.Context, acc *domain.Account) (string, error) {
	tok, err := u.tokens.Issue(acc.Email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return tok, nil
}

func (u *authUsecase) ResolveAccount(ctx context.Context, email string) (*domain.Account, error) {
	acc, err := u.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Could not validate credentials")
		}
		return nil, apperror.Internal(err)
	}
	return acc, nil
}

func (u *authUsecase) ListUsers(ctx context.Context, role *domain.Role, skip, limit int) ([]domain.Account, error) {
	if limit < 1 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	accounts, err := u.store.ListUsers(ctx, role, skip, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return accounts, nil
}

func (u *authUsecase) UpdateUser(ctx context.Context, role domain.Role, id string, upd domain.UpdateUser) (*domain.Account, error) {
	acc, sync, err := u.store.UpdateUser(ctx, role, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	if sync.Degraded {
		logger.Log.Warn("Account updated with degraded users sync",
			"account_id", id, "reason", sync.Reason)
	}
	return acc, nil
}

func (u *authUsecase) DeleteUser(ctx context.Context, role domain.Role, id string) error {
	sync, err := u.store.DeleteUser(ctx, role, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	if sync.Degraded {
		logger.Log.Warn("Account deleted with degraded users sync",
			"account_id", id, "reason", sync.Reason)
	}
	return nil
}
