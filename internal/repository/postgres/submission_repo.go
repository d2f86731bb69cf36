package postgres

import (
	"context"
	"errors"

	"consultant-tracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type submissionRepo struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

const submissionCols = `id, jd_id, consultant_id, recruiter_id, comments, resume_path,
	status, recruiter_read, created_at, updated_at`

func (r *submissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	query := `INSERT INTO submissions (` + submissionCols + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		sub.ID, sub.JDID, sub.ConsultantID, sub.RecruiterID, sub.Comments, sub.ResumePath,
		sub.Status, sub.RecruiterRead, sub.CreatedAt, sub.UpdatedAt,
	)
	return err
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	query := `SELECT ` + submissionCols + ` FROM submissions WHERE id = $1`
	return scanSubmission(r.db.QueryRow(ctx, query, id))
}

func (r *submissionRepo) GetByConsultant(ctx context.Context, consultantID string) ([]domain.Submission, error) {
	query := `SELECT ` + submissionCols + ` FROM submissions
              WHERE consultant_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, consultantID)
}

func (r *submissionRepo) GetAll(ctx context.Context, recruiterID string) ([]domain.Submission, error) {
	query := `SELECT ` + submissionCols + ` FROM submissions
              WHERE ($1 = '' OR recruiter_id = $1) ORDER BY created_at DESC`
	return r.queryMany(ctx, query, recruiterID)
}

func (r *submissionRepo) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) (*domain.Submission, error) {
	query := `UPDATE submissions SET status = $2, updated_at = now()
              WHERE id = $1 RETURNING ` + submissionCols
	return scanSubmission(r.db.QueryRow(ctx, query, id, status))
}

func (r *submissionRepo) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Submission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []domain.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var sub domain.Submission
	err := row.Scan(
		&sub.ID, &sub.JDID, &sub.ConsultantID, &sub.RecruiterID, &sub.Comments, &sub.ResumePath,
		&sub.Status, &sub.RecruiterRead, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}
