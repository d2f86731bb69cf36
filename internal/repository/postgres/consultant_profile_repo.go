package postgres

import (
	"context"
	"errors"
	"reflect"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type consultantProfileRepo struct {
	db *pgxpool.Pool
}

func NewConsultantProfileRepository(db *pgxpool.Pool) domain.ConsultantProfileRepository {
	return &consultantProfileRepo{db: db}
}

const consultantProfileSelect = `
	SELECT cp.id, cp.consultant_id, cp.experience_years, cp.tech_stack, cp.available,
	       cp.location, cp.visa_status, cp.rating, cp.notes, cp.professional_summary,
	       cp.linkedin_url, cp.github_url, cp.portfolio_url, cp.education,
	       cp.certifications, cp.tech_stack_proficiency,
	       cp.resume_path, cp.created_at, cp.updated_at,
	       COALESCE(c.phone, '') AS phone
	FROM consultant_profiles cp
	LEFT JOIN consultants c ON cp.consultant_id = c.id`

func (r *consultantProfileRepo) GetByConsultantID(ctx context.Context, consultantID string) (*domain.ConsultantProfile, error) {
	query := consultantProfileSelect + ` WHERE cp.consultant_id = $1`
	return scanConsultantProfile(r.db.QueryRow(ctx, query, consultantID))
}

// Upsert sets only the provided fields. Experience, tech stack and
// availability get defaults on first insert; NULL parameters keep the stored
// value on conflict. A phone update writes through to the consultants account
// table, best-effort.
func (r *consultantProfileRepo) Upsert(ctx context.Context, consultantID string, upd domain.ConsultantProfileUpdate) (*domain.ConsultantProfile, error) {
	query := `INSERT INTO consultant_profiles
              (id, consultant_id, experience_years, tech_stack, available, location, visa_status,
               notes, professional_summary, linkedin_url, github_url, portfolio_url,
               education, certifications, tech_stack_proficiency, resume_path, created_at, updated_at)
              VALUES ($1, $2, COALESCE($3, 0), COALESCE($4, '{}'), COALESCE($5, TRUE),
                      $6, $7, $8, $9, $10, $11, $12, $13, COALESCE($14, '{}'), $15, $16, now(), now())
              ON CONFLICT (consultant_id) DO UPDATE
              SET experience_years       = COALESCE($3, consultant_profiles.experience_years),
                  tech_stack             = COALESCE($4, consultant_profiles.tech_stack),
                  available              = COALESCE($5, consultant_profiles.available),
                  location               = COALESCE($6, consultant_profiles.location),
                  visa_status            = COALESCE($7, consultant_profiles.visa_status),
                  notes                  = COALESCE($8, consultant_profiles.notes),
                  professional_summary   = COALESCE($9, consultant_profiles.professional_summary),
                  linkedin_url           = COALESCE($10, consultant_profiles.linkedin_url),
                  github_url             = COALESCE($11, consultant_profiles.github_url),
                  portfolio_url          = COALESCE($12, consultant_profiles.portfolio_url),
                  education              = COALESCE($13, consultant_profiles.education),
                  certifications         = COALESCE($14, consultant_profiles.certifications),
                  tech_stack_proficiency = COALESCE($15, consultant_profiles.tech_stack_proficiency),
                  resume_path            = COALESCE($16, consultant_profiles.resume_path),
                  updated_at             = now()`
	_, err := r.db.Exec(ctx, query,
		uuid.NewString(), consultantID,
		upd.ExperienceYears, nullableTextArray(upd.TechStack), upd.Available,
		upd.Location, upd.VisaStatus, upd.Notes, upd.ProfessionalSummary,
		upd.LinkedinURL, upd.GithubURL, upd.PortfolioURL,
		nullableJSON(upd.Education), nullableTextArray(upd.Certifications),
		nullableJSON(upd.TechStackProficiency), upd.ResumePath,
	)
	if err != nil {
		return nil, err
	}

	if upd.Phone != nil {
		if _, err := r.db.Exec(ctx,
			`UPDATE consultants SET phone = $2, updated_at = now() WHERE id = $1`,
			consultantID, *upd.Phone,
		); err != nil {
			logger.Log.Warn("Phone write-through to consultants table failed",
				"consultant_id", consultantID, "error", err)
		}
	}

	return r.GetByConsultantID(ctx, consultantID)
}

func (r *consultantProfileRepo) GetAll(ctx context.Context, skip, limit int) ([]domain.ConsultantProfile, error) {
	query := consultantProfileSelect + ` ORDER BY cp.created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.ConsultantProfile{}
	for rows.Next() {
		p, err := scanConsultantProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func scanConsultantProfile(row pgx.Row) (*domain.ConsultantProfile, error) {
	var p domain.ConsultantProfile
	err := row.Scan(
		&p.ID, &p.ConsultantID, &p.ExperienceYears, pq.Array(&p.TechStack), &p.Available,
		&p.Location, &p.VisaStatus, &p.Rating, &p.Notes, &p.ProfessionalSummary,
		&p.LinkedinURL, &p.GithubURL, &p.PortfolioURL, &p.Education,
		pq.Array(&p.Certifications), &p.TechStackProficiency,
		&p.ResumePath, &p.CreatedAt, &p.UpdatedAt, &p.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// nullableTextArray maps an optional string slice to a text[] parameter,
// keeping SQL NULL for "not provided".
func nullableTextArray(v *[]string) interface{} {
	if v == nil {
		return nil
	}
	return pq.Array(*v)
}

// nullableJSON maps an absent update map to a SQL NULL jsonb parameter. A nil
// map would otherwise be written as the JSON literal null.
func nullableJSON(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map && rv.IsNil() {
		return nil
	}
	return v
}
