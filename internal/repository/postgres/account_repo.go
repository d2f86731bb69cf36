package postgres

import (
	"context"
	"errors"
	"fmt"

	"consultant-tracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// roleTables maps an account role to its backing table.
var roleTables = map[domain.Role]string{
	domain.RoleAdmin:      "admins",
	domain.RoleRecruiter:  "recruiters",
	domain.RoleConsultant: "consultants",
}

// accountRepo serves one of the three per-role account tables. The tables
// share an identical credential schema, so the queries only differ by name.
type accountRepo struct {
	db    *pgxpool.Pool
	table string
	role  domain.Role
}

func NewAccountRepository(db *pgxpool.Pool, role domain.Role) domain.AccountRepository {
	table, ok := roleTables[role]
	if !ok {
		panic(fmt.Sprintf("no account table for role %q", role))
	}
	return &accountRepo{db: db, table: table, role: role}
}

func (r *accountRepo) Create(ctx context.Context, acc *domain.Account) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, email, name, hashed_password, is_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`, r.table)
	_, err := r.db.Exec(ctx, query,
		acc.ID, acc.Email, acc.Name, acc.HashedPassword, acc.IsActive, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT id, email, name, hashed_password, is_active, created_at, updated_at
              FROM %s WHERE id = $1`, r.table)
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT id, email, name, hashed_password, is_active, created_at, updated_at
              FROM %s WHERE email = $1`, r.table)
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *accountRepo) GetAll(ctx context.Context, skip, limit int) ([]domain.Account, error) {
	query := fmt.Sprintf(`SELECT id, email, name, hashed_password, is_active, created_at, updated_at
              FROM %s ORDER BY created_at DESC OFFSET $1 LIMIT $2`, r.table)
	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(
			&acc.ID, &acc.Email, &acc.Name, &acc.HashedPassword, &acc.IsActive, &acc.CreatedAt, &acc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		acc.Role = r.role
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *accountRepo) Update(ctx context.Context, id string, upd domain.UpdateUser) (*domain.Account, error) {
	query := fmt.Sprintf(`UPDATE %s
              SET name = COALESCE($2, name), is_active = COALESCE($3, is_active), updated_at = now()
              WHERE id = $1
              RETURNING id, email, name, hashed_password, is_active, created_at, updated_at`, r.table)
	return r.scanOne(r.db.QueryRow(ctx, query, id, upd.Name, upd.IsActive))
}

func (r *accountRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepo) scanOne(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.ID, &acc.Email, &acc.Name, &acc.HashedPassword, &acc.IsActive, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	acc.Role = r.role
	return &acc, nil
}
