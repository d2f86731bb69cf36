package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/apperror"
	"consultant-tracker-backend/pkg/logger"
	"consultant-tracker-backend/pkg/upload"

	"github.com/google/uuid"
)

// Sentinel for submissions whose consultant account is gone. The email
// degrades to an empty string.
const unknownConsultant = "Unknown"

type submissionUsecase struct {
	subRepo  domain.SubmissionRepository
	jobRepo  domain.JobRepository
	store    domain.CredentialStore
	profiles domain.ConsultantProfileRepository
	uploads  *upload.Store
}

func NewSubmissionUsecase(
	subRepo domain.SubmissionRepository,
	jobRepo domain.JobRepository,
	store domain.CredentialStore,
	profiles domain.ConsultantProfileRepository,
	uploads *upload.Store,
) domain.SubmissionUsecase {
	return &submissionUsecase{
		subRepo:  subRepo,
		jobRepo:  jobRepo,
		store:    store,
		profiles: profiles,
		uploads:  uploads,
	}
}

// Apply persists the resume file before inserting the submission. A failed
// insert leaves the stored file behind; there is no compensating cleanup.
func (u *submissionUsecase) Apply(ctx context.Context, acc *domain.Account, jdID, comments, filename string, size int64, r io.Reader) (*domain.Submission, error) {
	job, err := u.jobRepo.GetByID(ctx, jdID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job description not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusOpen {
		return nil, apperror.BadRequest("Job is not open for submissions")
	}

	u.ensureProfile(ctx, acc)

	safeName, err := u.uploads.ValidateName(filename)
	if err != nil {
		return nil, uploadError(err)
	}
	name := fmt.Sprintf("%s_%d_%s", acc.ID, time.Now().Unix(), safeName)
	path, err := u.uploads.Save(resumeSubdir, name, size, r)
	if err != nil {
		return nil, uploadError(err)
	}

	now := time.Now()
	sub := &domain.Submission{
		ID:           uuid.NewString(),
		JDID:         jdID,
		ConsultantID: acc.ID,
		RecruiterID:  job.RecruiterID,
		ResumePath:   path,
		Status:       domain.StatusSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if comments != "" {
		sub.Comments = &comments
	}

	if err := u.subRepo.Create(ctx, sub); err != nil {
		logger.Log.Warn("Submission insert failed after file write; file orphaned",
			"path", path, "consultant_id", acc.ID, "error", err)
		return nil, apperror.Internal(err)
	}

	u.enrich(ctx, sub)
	logger.Log.Info("Submission created", "submission_id", sub.ID, "jd_id", jdID, "consultant_id", acc.ID)
	return sub, nil
}

// ensureProfile creates a default consultant profile for first-time
// applicants so recruiters can open the applicant right away. Best-effort:
// a failure is logged and never blocks the submission.
func (u *submissionUsecase) ensureProfile(ctx context.Context, acc *domain.Account) {
	if _, err := u.profiles.GetByConsultantID(ctx, acc.ID); err == nil {
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		logger.Log.Warn("Consultant profile lookup failed during apply",
			"consultant_id", acc.ID, "error", err)
		return
	}
	if _, err := u.profiles.Upsert(ctx, acc.ID, domain.ConsultantProfileUpdate{}); err != nil {
		logger.Log.Warn("Consultant profile creation failed during apply",
			"consultant_id", acc.ID, "error", err)
	}
}

func (u *submissionUsecase) MySubmissions(ctx context.Context, acc *domain.Account) ([]domain.Submission, error) {
	subs, err := u.subRepo.GetByConsultant(ctx, acc.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range subs {
		u.enrich(ctx, &subs[i])
	}
	return subs, nil
}

// ListAll returns every submission for admins, and only owned submissions
// for recruiters.
func (u *submissionUsecase) ListAll(ctx context.Context, acc *domain.Account) ([]domain.Submission, error) {
	recruiterID := ""
	if acc.Role == domain.RoleRecruiter {
		recruiterID = acc.ID
	}

	subs, err := u.subRepo.GetAll(ctx, recruiterID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range subs {
		u.enrich(ctx, &subs[i])
	}
	return subs, nil
}

// UpdateStatus moves a submission to any valid status; there are no
// transition restrictions.
func (u *submissionUsecase) UpdateStatus(ctx context.Context, acc *domain.Account, id string, status domain.SubmissionStatus) (*domain.Submission, error) {
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid submission status")
	}

	sub, err := u.subRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Submission not found")
		}
		return nil, apperror.Internal(err)
	}
	if acc.Role != domain.RoleAdmin && sub.RecruiterID != acc.ID {
		return nil, apperror.Forbidden("Not authorized to update this submission")
	}

	updated, err := u.subRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.enrich(ctx, updated)
	logger.Log.Info("Submission status updated", "submission_id", id, "status", status)
	return updated, nil
}

// enrich merges consultant and job data into the submission, degrading each
// reference independently.
func (u *submissionUsecase) enrich(ctx context.Context, sub *domain.Submission) {
	if acc, err := u.store.AccountByID(ctx, domain.RoleConsultant, sub.ConsultantID); err != nil {
		logger.Log.Warn("Submission references unresolvable consultant",
			"submission_id", sub.ID, "consultant_id", sub.ConsultantID, "error", err)
		sub.ConsultantName = unknownConsultant
		sub.ConsultantEmail = ""
	} else {
		sub.ConsultantName = acc.Name
		sub.ConsultantEmail = acc.Email
	}

	if job, err := u.jobRepo.GetByID(ctx, sub.JDID); err != nil {
		logger.Log.Warn("Submission references unresolvable job",
			"submission_id", sub.ID, "jd_id", sub.JDID, "error", err)
		sub.JDTitle = unknownConsultant
	} else {
		sub.JDTitle = job.Title
		sub.JDLocation = job.Location
		exp := job.ExperienceRequired
		sub.JDExperienceRequired = &exp
		sub.JDTechRequired = job.TechRequired
		desc := job.Description
		sub.JDDescription = &desc
	}
}
