package postgres

import (
	"context"

	"consultant-tracker-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// userMirror maintains the shared users table, a denormalized view of the
// three role tables kept by best-effort writes alongside each account change.
type userMirror struct {
	db *pgxpool.Pool
}

func NewUserMirror(db *pgxpool.Pool) domain.UserMirror {
	return &userMirror{db: db}
}

func (m *userMirror) Upsert(ctx context.Context, acc *domain.Account) error {
	query := `INSERT INTO users (id, email, name, role, is_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              ON CONFLICT (id) DO UPDATE
              SET email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role,
                  is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at`
	_, err := m.db.Exec(ctx, query,
		acc.ID, acc.Email, acc.Name, acc.Role, acc.IsActive, acc.CreatedAt, acc.UpdatedAt,
	)
	return err
}

func (m *userMirror) Remove(ctx context.Context, id string) error {
	_, err := m.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
