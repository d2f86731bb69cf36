package postgres

import (
	"context"
	"errors"

	"consultant-tracker-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type recruiterProfileRepo struct {
	db *pgxpool.Pool
}

func NewRecruiterProfileRepository(db *pgxpool.Pool) domain.RecruiterProfileRepository {
	return &recruiterProfileRepo{db: db}
}

const recruiterProfileCols = `id, recruiter_id, company_name, phone, linkedin_url, bio, location, created_at, updated_at`

func (r *recruiterProfileRepo) GetByRecruiterID(ctx context.Context, recruiterID string) (*domain.RecruiterProfile, error) {
	query := `SELECT ` + recruiterProfileCols + ` FROM recruiter_profiles WHERE recruiter_id = $1`
	return scanRecruiterProfile(r.db.QueryRow(ctx, query, recruiterID))
}

// Upsert sets only the provided fields. NULL parameters fall back to the
// stored value on conflict, so omitted fields are left untouched.
func (r *recruiterProfileRepo) Upsert(ctx context.Context, recruiterID string, upd domain.RecruiterProfileUpdate) (*domain.RecruiterProfile, error) {
	query := `INSERT INTO recruiter_profiles (id, recruiter_id, company_name, phone, linkedin_url, bio, location, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
              ON CONFLICT (recruiter_id) DO UPDATE
              SET company_name = COALESCE(EXCLUDED.company_name, recruiter_profiles.company_name),
                  phone        = COALESCE(EXCLUDED.phone, recruiter_profiles.phone),
                  linkedin_url = COALESCE(EXCLUDED.linkedin_url, recruiter_profiles.linkedin_url),
                  bio          = COALESCE(EXCLUDED.bio, recruiter_profiles.bio),
                  location     = COALESCE(EXCLUDED.location, recruiter_profiles.location),
                  updated_at   = now()
              RETURNING ` + recruiterProfileCols
	return scanRecruiterProfile(r.db.QueryRow(ctx, query,
		uuid.NewString(), recruiterID,
		upd.CompanyName, upd.Phone, upd.LinkedinURL, upd.Bio, upd.Location,
	))
}

func scanRecruiterProfile(row pgx.Row) (*domain.RecruiterProfile, error) {
	var p domain.RecruiterProfile
	err := row.Scan(
		&p.ID, &p.RecruiterID, &p.CompanyName, &p.Phone, &p.LinkedinURL, &p.Bio, &p.Location,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
