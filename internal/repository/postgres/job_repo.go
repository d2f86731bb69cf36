package postgres

import (
	"context"
	"errors"

	"consultant-tracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobCols = `id, recruiter_id, title, description, client_name, experience_required,
	tech_required, location, visa_required, start_date, job_type, jd_summary,
	additional_notes, status, jd_file_path, created_at, updated_at`

func (r *jobRepo) Create(ctx context.Context, job *domain.JobDescription) error {
	query := `INSERT INTO job_descriptions (` + jobCols + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.RecruiterID, job.Title, job.Description, job.ClientName, job.ExperienceRequired,
		pq.Array(job.TechRequired), job.Location, job.VisaRequired, job.StartDate, job.JobType,
		job.JDSummary, job.AdditionalNotes, job.Status, job.JDFilePath, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobDescription, error) {
	query := `SELECT ` + jobCols + ` FROM job_descriptions WHERE id = $1`
	return scanJob(r.db.QueryRow(ctx, query, id))
}

func (r *jobRepo) GetAll(ctx context.Context, status string, skip, limit int) ([]domain.JobDescription, error) {
	query := `SELECT ` + jobCols + ` FROM job_descriptions
              WHERE ($1 = '' OR status = $1)
              ORDER BY created_at DESC OFFSET $2 LIMIT $3`
	rows, err := r.db.Query(ctx, query, status, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.JobDescription{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// Update sets only the provided fields; NULL parameters keep stored values.
func (r *jobRepo) Update(ctx context.Context, id string, upd domain.JobUpdate) (*domain.JobDescription, error) {
	query := `UPDATE job_descriptions
              SET title               = COALESCE($2, title),
                  description         = COALESCE($3, description),
                  client_name         = COALESCE($4, client_name),
                  experience_required = COALESCE($5, experience_required),
                  tech_required       = COALESCE($6, tech_required),
                  location            = COALESCE($7, location),
                  visa_required       = COALESCE($8, visa_required),
                  start_date          = COALESCE($9, start_date),
                  job_type            = COALESCE($10, job_type),
                  jd_summary          = COALESCE($11, jd_summary),
                  additional_notes    = COALESCE($12, additional_notes),
                  status              = COALESCE($13, status),
                  jd_file_path        = COALESCE($14, jd_file_path),
                  updated_at          = now()
              WHERE id = $1
              RETURNING ` + jobCols
	return scanJob(r.db.QueryRow(ctx, query, id,
		upd.Title, upd.Description, upd.ClientName, upd.ExperienceRequired,
		nullableTextArray(upd.TechRequired), upd.Location, upd.VisaRequired,
		upd.StartDate, upd.JobType, upd.JDSummary, upd.AdditionalNotes, upd.Status,
		upd.JDFilePath,
	))
}

func scanJob(row pgx.Row) (*domain.JobDescription, error) {
	var job domain.JobDescription
	err := row.Scan(
		&job.ID, &job.RecruiterID, &job.Title, &job.Description, &job.ClientName,
		&job.ExperienceRequired, pq.Array(&job.TechRequired), &job.Location, &job.VisaRequired,
		&job.StartDate, &job.JobType, &job.JDSummary, &job.AdditionalNotes, &job.Status,
		&job.JDFilePath, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}
