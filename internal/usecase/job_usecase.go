package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/ai"
	"consultant-tracker-backend/pkg/apperror"
	"consultant-tracker-backend/pkg/logger"
	"consultant-tracker-backend/pkg/upload"

	"github.com/google/uuid"
)

// Sentinel values substituted when a job's recruiter reference cannot be
// resolved. Listings degrade per entry instead of failing the request.
const (
	unknownRecruiterName = "Unknown Recruiter"
	unknownRecruiterMail = "N/A"
	invalidRecruiterRef  = "Invalid ID"
)

const jdFileSubdir = "jd_files"

type jobUsecase struct {
	jobRepo    domain.JobRepository
	store      domain.CredentialStore
	classifier domain.JDClassifier
	uploads    *upload.Store
}

func NewJobUsecase(jobRepo domain.JobRepository, store domain.CredentialStore, classifier domain.JDClassifier, uploads *upload.Store) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:    jobRepo,
		store:      store,
		classifier: classifier,
		uploads:    uploads,
	}
}

func (u *jobUsecase) Create(ctx context.Context, acc *domain.Account, job *domain.JobDescription) (*domain.JobDescription, error) {
	if job.Title == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if job.Description == "" {
		return nil, apperror.BadRequest("Description is required")
	}

	job.ID = uuid.NewString()
	job.RecruiterID = acc.ID
	if job.TechRequired == nil {
		job.TechRequired = []string{}
	}
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	if job.Status != domain.JobStatusOpen && job.Status != domain.JobStatusClosed {
		return nil, apperror.BadRequest("Status must be OPEN or CLOSED")
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	job.RecruiterName = acc.Name
	job.RecruiterEmail = acc.Email
	logger.Log.Info("Job description created", "job_id", job.ID, "recruiter_id", acc.ID)
	return job, nil
}

// List hides non-OPEN jobs from consultants regardless of the requested
// filter.
func (u *jobUsecase) List(ctx context.Context, acc *domain.Account, status string, skip, limit int) ([]domain.JobDescription, error) {
	if acc.Role == domain.RoleConsultant {
		status = domain.JobStatusOpen
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	jobs, err := u.jobRepo.GetAll(ctx, status, skip, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Cache recruiter lookups across the page.
	recruiters := map[string]*domain.Account{}
	for i := range jobs {
		u.attachRecruiter(ctx, &jobs[i], recruiters)
	}
	return jobs, nil
}

func (u *jobUsecase) Get(ctx context.Context, id string) (*domain.JobDescription, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job description not found")
		}
		return nil, apperror.Internal(err)
	}
	u.attachRecruiter(ctx, job, nil)
	return job, nil
}

// Update rejects any caller whose id differs from the stored recruiter_id.
// Admins get no exemption here.
func (u *jobUsecase) Update(ctx context.Context, acc *domain.Account, id string, upd domain.JobUpdate) (*domain.JobDescription, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job description not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.RecruiterID != acc.ID {
		return nil, apperror.Forbidden("Not authorized to update this job description")
	}
	if upd.Status != nil && *upd.Status != domain.JobStatusOpen && *upd.Status != domain.JobStatusClosed {
		return nil, apperror.BadRequest("Status must be OPEN or CLOSED")
	}

	updated, err := u.jobRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.attachRecruiter(ctx, updated, nil)
	return updated, nil
}

// UploadJDFile attaches the source JD document to the job, replacing any
// previous attachment. Ownership follows the same rule as Update.
func (u *jobUsecase) UploadJDFile(ctx context.Context, acc *domain.Account, id, filename string, size int64, r io.Reader) (*domain.JobDescription, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job description not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.RecruiterID != acc.ID {
		return nil, apperror.Forbidden("Not authorized to update this job description")
	}

	safeName, err := u.uploads.ValidateName(filename)
	if err != nil {
		return nil, uploadError(err)
	}

	var oldPath string
	if job.JDFilePath != nil {
		oldPath = *job.JDFilePath
	}

	name := fmt.Sprintf("%s_%d_%s", id, time.Now().Unix(), safeName)
	path, err := u.uploads.Save(jdFileSubdir, name, size, r)
	if err != nil {
		return nil, uploadError(err)
	}

	updated, err := u.jobRepo.Update(ctx, id, domain.JobUpdate{JDFilePath: &path})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if oldPath != "" && oldPath != path {
		if err := u.uploads.Delete(oldPath); err != nil {
			logger.Log.Warn("Failed to delete replaced JD file", "path", oldPath, "error", err)
		}
	}

	u.attachRecruiter(ctx, updated, nil)
	logger.Log.Info("JD file uploaded", "job_id", id, "path", path)
	return updated, nil
}

// JDFilePath resolves the job's attached document to a servable path.
func (u *jobUsecase) JDFilePath(ctx context.Context, id string) (string, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("Job description not found")
		}
		return "", apperror.Internal(err)
	}
	if job.JDFilePath == nil || *job.JDFilePath == "" {
		return "", apperror.NotFound("JD file not found")
	}

	path, err := u.uploads.Resolve(*job.JDFilePath)
	if err != nil {
		return "", apperror.NotFound("JD file is missing from storage")
	}
	return path, nil
}

func (u *jobUsecase) Classify(ctx context.Context, text string) (*domain.JobClassification, error) {
	if text == "" {
		return nil, apperror.BadRequest("Text is required")
	}
	if u.classifier == nil || !u.classifier.Available() {
		return nil, apperror.ServiceUnavailable("AI classification service is not configured")
	}

	result, err := u.classifier.Classify(ctx, text)
	if err != nil {
		if errors.Is(err, ai.ErrInvalidResponse) {
			return nil, apperror.BadRequest("AI returned an unparsable response")
		}
		return nil, apperror.ServiceUnavailable("AI classification service is unavailable")
	}
	return result, nil
}

// attachRecruiter merges recruiter name and email into the job, substituting
// sentinel values when the reference is malformed or points to a missing
// account.
func (u *jobUsecase) attachRecruiter(ctx context.Context, job *domain.JobDescription, cache map[string]*domain.Account) {
	if job.RecruiterID == "" || uuid.Validate(job.RecruiterID) != nil {
		job.RecruiterName = invalidRecruiterRef
		job.RecruiterEmail = unknownRecruiterMail
		return
	}

	if cache != nil {
		if acc, ok := cache[job.RecruiterID]; ok {
			if acc == nil {
				job.RecruiterName = unknownRecruiterName
				job.RecruiterEmail = unknownRecruiterMail
			} else {
				job.RecruiterName = acc.Name
				job.RecruiterEmail = acc.Email
			}
			return
		}
	}

	acc, err := u.store.AccountByID(ctx, domain.RoleRecruiter, job.RecruiterID)
	if err != nil {
		logger.Log.Warn("Job references unresolvable recruiter",
			"job_id", job.ID, "recruiter_id", job.RecruiterID, "error", err)
		job.RecruiterName = unknownRecruiterName
		job.RecruiterEmail = unknownRecruiterMail
		if cache != nil {
			cache[job.RecruiterID] = nil
		}
		return
	}

	job.RecruiterName = acc.Name
	job.RecruiterEmail = acc.Email
	if cache != nil {
		cache[job.RecruiterID] = acc
	}
}
