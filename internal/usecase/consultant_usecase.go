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
)

// Sentinel values substituted when a profile's account reference cannot be
// resolved.
const (
	unknownUserName = "Unknown User"
	unknownUserMail = "N/A"
)

const resumeSubdir = "resumes"

type consultantUsecase struct {
	profileRepo domain.ConsultantProfileRepository
	store       domain.CredentialStore
	subRepo     domain.SubmissionRepository
	uploads     *upload.Store
}

func NewConsultantUsecase(
	profileRepo domain.ConsultantProfileRepository,
	store domain.CredentialStore,
	subRepo domain.SubmissionRepository,
	uploads *upload.Store,
) domain.ConsultantUsecase {
	return &consultantUsecase{
		profileRepo: profileRepo,
		store:       store,
		subRepo:     subRepo,
		uploads:     uploads,
	}
}

// GetMyProfile returns the caller's profile, creating one with defaults on
// first access.
func (u *consultantUsecase) GetMyProfile(ctx context.Context, acc *domain.Account) (*domain.ConsultantProfile, error) {
	profile, err := u.profileRepo.GetByConsultantID(ctx, acc.ID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Log.Info("Creating consultant profile on first access", "consultant_id", acc.ID)
		profile, err = u.profileRepo.Upsert(ctx, acc.ID, domain.ConsultantProfileUpdate{})
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	profile.Name = acc.Name
	profile.Email = acc.Email
	return profile, nil
}

func (u *consultantUsecase) UpdateMyProfile(ctx context.Context, acc *domain.Account, upd domain.ConsultantProfileUpdate) (*domain.ConsultantProfile, error) {
	profile, err := u.profileRepo.Upsert(ctx, acc.ID, upd)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	profile.Name = acc.Name
	profile.Email = acc.Email
	return profile, nil
}

func (u *consultantUsecase) List(ctx context.Context, skip, limit int) ([]domain.ConsultantProfile, error) {
	if limit < 1 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	profiles, err := u.profileRepo.GetAll(ctx, skip, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range profiles {
		u.attachAccount(ctx, &profiles[i])
	}
	return profiles, nil
}

func (u *consultantUsecase) GetByID(ctx context.Context, consultantID string) (*domain.ConsultantProfile, error) {
	profile, err := u.profileRepo.GetByConsultantID(ctx, consultantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Consultant profile not found")
		}
		return nil, apperror.Internal(err)
	}
	u.attachAccount(ctx, profile)
	return profile, nil
}

// UploadResume stores the file and records its path on the profile.
func (u *consultantUsecase) UploadResume(ctx context.Context, acc *domain.Account, filename string, size int64, r io.Reader) (string, error) {
	safeName, err := u.uploads.ValidateName(filename)
	if err != nil {
		return "", uploadError(err)
	}

	// Remember the previous file so a replacement can clean it up.
	var oldPath string
	if existing, err := u.profileRepo.GetByConsultantID(ctx, acc.ID); err == nil && existing.ResumePath != nil {
		oldPath = *existing.ResumePath
	}

	name := fmt.Sprintf("%s_%d_%s", acc.ID, time.Now().Unix(), safeName)
	path, err := u.uploads.Save(resumeSubdir, name, size, r)
	if err != nil {
		return "", uploadError(err)
	}

	if _, err := u.profileRepo.Upsert(ctx, acc.ID, domain.ConsultantProfileUpdate{ResumePath: &path}); err != nil {
		return "", apperror.Internal(err)
	}

	if oldPath != "" && oldPath != path {
		if err := u.uploads.Delete(oldPath); err != nil {
			logger.Log.Warn("Failed to delete replaced resume", "path", oldPath, "error", err)
		}
	}

	logger.Log.Info("Resume uploaded", "consultant_id", acc.ID, "path", path)
	return path, nil
}

func (u *consultantUsecase) ResumePath(ctx context.Context, consultantID string) (string, error) {
	profile, err := u.profileRepo.GetByConsultantID(ctx, consultantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("Consultant profile not found")
		}
		return "", apperror.Internal(err)
	}
	if profile.ResumePath == nil || *profile.ResumePath == "" {
		return "", apperror.NotFound("Resume not found")
	}

	full, err := u.uploads.Resolve(*profile.ResumePath)
	if err != nil {
		if errors.Is(err, upload.ErrFileNotFound) {
			return "", apperror.NotFound("Resume file is missing from storage")
		}
		return "", apperror.Internal(err)
	}
	return full, nil
}

// Stats summarizes the caller's submission pipeline.
func (u *consultantUsecase) Stats(ctx context.Context, acc *domain.Account) (*domain.SubmissionStats, error) {
	subs, err := u.subRepo.GetByConsultant(ctx, acc.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	stats := &domain.SubmissionStats{ByStatus: map[string]int{}}
	cutoff := time.Now().AddDate(0, 0, -30)
	for _, s := range subs {
		stats.Total++
		stats.ByStatus[string(s.Status)]++
		if s.CreatedAt.After(cutoff) {
			stats.Recent30Days++
		}
	}
	stats.Pending = stats.ByStatus[string(domain.StatusSubmitted)]
	stats.Interviews = stats.ByStatus[string(domain.StatusInterview)]
	stats.Offers = stats.ByStatus[string(domain.StatusOffer)]
	stats.Joined = stats.ByStatus[string(domain.StatusJoined)]
	stats.Rejected = stats.ByStatus[string(domain.StatusRejected)]
	stats.Withdrawn = stats.ByStatus[string(domain.StatusWithdrawn)]
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Joined) / float64(stats.Total) * 100
	}
	return stats, nil
}

// attachAccount merges account name and email into the profile, substituting
// sentinels when the account is gone.
func (u *consultantUsecase) attachAccount(ctx context.Context, profile *domain.ConsultantProfile) {
	acc, err := u.store.AccountByID(ctx, domain.RoleConsultant, profile.ConsultantID)
	if err != nil {
		logger.Log.Warn("Consultant profile references unresolvable account",
			"consultant_id", profile.ConsultantID, "error", err)
		profile.Name = unknownUserName
		profile.Email = unknownUserMail
		return
	}
	profile.Name = acc.Name
	profile.Email = acc.Email
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, upload.ErrBadExtension):
		return apperror.BadRequest("Only .pdf, .doc and .docx files are allowed")
	case errors.Is(err, upload.ErrFileTooLarge):
		return apperror.BadRequest("File exceeds the maximum allowed size")
	case errors.Is(err, upload.ErrEmptyFilename):
		return apperror.BadRequest("Filename is required")
	default:
		return apperror.Internal(err)
	}
}
