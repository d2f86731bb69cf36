package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/internal/usecase"
	"consultant-tracker-backend/pkg/apperror"
	"consultant-tracker-backend/pkg/password"
	"consultant-tracker-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTokenManager() *token.Manager {
	return token.NewManager("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("Should hash password and store account", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		var created *domain.Account
		store.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.Account")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.Account)
			}).
			Return(domain.SyncOK(), nil)

		acc, err := uc.Register(context.Background(), domain.CreateUser{
			Email:    "rec@example.com",
			Name:     "Rec",
			Password: "secret123",
			Role:     domain.RoleRecruiter,
			IsActive: true,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, acc.ID)
		assert.Equal(t, domain.RoleRecruiter, acc.Role)
		assert.NotEqual(t, "secret123", created.HashedPassword)
		assert.True(t, password.Verify("secret123", created.HashedPassword))
	})

	t.Run("Should reject duplicate email with conflict", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		store.On("CreateUser", mock.Anything, mock.Anything).
			Return(domain.SyncOK(), domain.ErrDuplicateEmail)

		_, err := uc.Register(context.Background(), domain.CreateUser{
			Email: "dup@example.com", Name: "Dup", Password: "secret123", Role: domain.RoleConsultant,
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Should reject password over 72 bytes", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		_, err := uc.Register(context.Background(), domain.CreateUser{
			Email: "a@b.com", Name: "A", Password: strings.Repeat("x", 73), Role: domain.RoleAdmin,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "72 bytes")
		store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hashed, _ := password.Hash("secret123")
	active := &domain.Account{
		ID: "id-1", Email: "rec@example.com", Role: domain.RoleRecruiter,
		IsActive: true, HashedPassword: hashed,
	}

	t.Run("Should issue a verifiable token on success", func(t *testing.T) {
		store := new(MockCredentialStore)
		tokens := newTokenManager()
		uc := usecase.NewAuthUsecase(store, tokens)

		store.On("FindByEmail", mock.Anything, "rec@example.com").Return(active, nil)

		tok, acc, err := uc.Login(context.Background(), "rec@example.com", "secret123")
		assert.NoError(t, err)
		assert.Equal(t, "id-1", acc.ID)

		subject, err := tokens.Verify(tok)
		assert.NoError(t, err)
		assert.Equal(t, "rec@example.com", subject)
	})

	t.Run("Should reject wrong password", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		store.On("FindByEmail", mock.Anything, "rec@example.com").Return(active, nil)

		_, _, err := uc.Login(context.Background(), "rec@example.com", "wrong")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Incorrect email or password")
	})

	t.Run("Should reject unknown email with the same message", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		store.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(context.Background(), "nobody@example.com", "secret123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Incorrect email or password")
	})

	t.Run("Should reject inactive account", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		inactive := *active
		inactive.IsActive = false
		store.On("FindByEmail", mock.Anything, "rec@example.com").Return(&inactive, nil)

		_, _, err := uc.Login(context.Background(), "rec@example.com", "secret123")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Contains(t, err.Error(), "User account is deactivated")
	})
}

func TestResolveAccount(t *testing.T) {
	t.Run("Should map missing account to unauthorized", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		store.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.ResolveAccount(context.Background(), "ghost@example.com")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})
}

func TestUserAdministration(t *testing.T) {
	t.Run("Should map missing user to not found on update", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		store.On("UpdateUser", mock.Anything, domain.RoleConsultant, "missing", mock.Anything).
			Return(nil, domain.SyncOK(), domain.ErrNotFound)

		_, err := uc.UpdateUser(context.Background(), domain.RoleConsultant, "missing", domain.UpdateUser{})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should tolerate degraded mirror sync on delete", func(t *testing.T) {
		store := new(MockCredentialStore)
		uc := usecase.NewAuthUsecase(store, newTokenManager())

		store.On("DeleteUser", mock.Anything, domain.RoleRecruiter, "id-1").
			Return(domain.SyncDegraded("mirror down"), nil)

		err := uc.DeleteUser(context.Background(), domain.RoleRecruiter, "id-1")
		assert.NoError(t, err)
	})
}
