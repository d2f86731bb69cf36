package postgres

import (
	"context"
	"errors"
	"testing"

	"consultant-tracker-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

// fakeAccountRepo is an in-memory AccountRepository keyed by email.
type fakeAccountRepo struct {
	byEmail map[string]*domain.Account
	created []*domain.Account
}

func newFakeAccountRepo(accounts ...*domain.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{byEmail: map[string]*domain.Account{}}
	for _, acc := range accounts {
		r.byEmail[acc.Email] = acc
	}
	return r
}

func (r *fakeAccountRepo) Create(_ context.Context, acc *domain.Account) error {
	r.byEmail[acc.Email] = acc
	r.created = append(r.created, acc)
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, acc := range r.byEmail {
		if acc.ID == id {
			return acc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	if acc, ok := r.byEmail[email]; ok {
		return acc, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeAccountRepo) GetAll(_ context.Context, _, _ int) ([]domain.Account, error) {
	out := []domain.Account{}
	for _, acc := range r.byEmail {
		out = append(out, *acc)
	}
	return out, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, _ string, _ domain.UpdateUser) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeAccountRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeMirror struct {
	err      error
	upserted []*domain.Account
}

func (m *fakeMirror) Upsert(_ context.Context, acc *domain.Account) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, acc)
	return nil
}

func (m *fakeMirror) Remove(_ context.Context, _ string) error { return m.err }

func newTestStore(mirror domain.UserMirror) *credentialStore {
	return &credentialStore{
		admins:      newFakeAccountRepo(),
		recruiters:  newFakeAccountRepo(),
		consultants: newFakeAccountRepo(),
		mirror:      mirror,
	}
}

func TestCredentialStoreCreateUser(t *testing.T) {
	t.Run("Should reject an email already used in another role table", func(t *testing.T) {
		store := newTestStore(&fakeMirror{})
		store.recruiters = newFakeAccountRepo(&domain.Account{
			ID: "r1", Email: "taken@example.com", Role: domain.RoleRecruiter,
		})

		_, err := store.CreateUser(context.Background(), &domain.Account{
			ID: "c1", Email: "taken@example.com", Role: domain.RoleConsultant,
		})

		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		assert.Empty(t, store.consultants.(*fakeAccountRepo).created)
	})

	t.Run("Should insert into the role table and mirror on success", func(t *testing.T) {
		mirror := &fakeMirror{}
		store := newTestStore(mirror)

		acc := &domain.Account{ID: "c1", Email: "new@example.com", Role: domain.RoleConsultant}
		outcome, err := store.CreateUser(context.Background(), acc)

		assert.NoError(t, err)
		assert.False(t, outcome.Degraded)
		assert.Len(t, store.consultants.(*fakeAccountRepo).created, 1)
		assert.Len(t, mirror.upserted, 1)
	})

	t.Run("Should degrade but not fail when the mirror write fails", func(t *testing.T) {
		store := newTestStore(&fakeMirror{err: errors.New("users table down")})

		outcome, err := store.CreateUser(context.Background(), &domain.Account{
			ID: "c1", Email: "new@example.com", Role: domain.RoleConsultant,
		})

		assert.NoError(t, err)
		assert.True(t, outcome.Degraded)
		assert.Contains(t, outcome.Reason, "users mirror insert failed")
		assert.Len(t, store.consultants.(*fakeAccountRepo).created, 1)
	})

	t.Run("Should reject an unknown role before touching storage", func(t *testing.T) {
		store := newTestStore(&fakeMirror{})

		_, err := store.CreateUser(context.Background(), &domain.Account{
			ID: "x1", Email: "x@example.com", Role: domain.Role("superuser"),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown role")
	})
}

func TestCredentialStoreFindByEmail(t *testing.T) {
	t.Run("Should prefer recruiters when the email exists in several tables", func(t *testing.T) {
		store := newTestStore(&fakeMirror{})
		store.recruiters = newFakeAccountRepo(&domain.Account{
			ID: "r1", Email: "both@example.com", Role: domain.RoleRecruiter,
		})
		store.consultants = newFakeAccountRepo(&domain.Account{
			ID: "c1", Email: "both@example.com", Role: domain.RoleConsultant,
		})

		acc, err := store.FindByEmail(context.Background(), "both@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "r1", acc.ID)
	})

	t.Run("Should report not found when no table has the email", func(t *testing.T) {
		store := newTestStore(&fakeMirror{})

		_, err := store.FindByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
