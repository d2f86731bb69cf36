package usecase

import (
	"context"
	"errors"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/apperror"
	"consultant-tracker-backend/pkg/logger"
)

type recruiterUsecase struct {
	profileRepo domain.RecruiterProfileRepository
}

func NewRecruiterUsecase(profileRepo domain.RecruiterProfileRepository) domain.RecruiterUsecase {
	return &recruiterUsecase{profileRepo: profileRepo}
}

// GetMyProfile returns the caller's profile, creating an empty one on first
// access.
func (u *recruiterUsecase) GetMyProfile(ctx context.Context, acc *domain.Account) (*domain.RecruiterProfile, error) {
	profile, err := u.profileRepo.GetByRecruiterID(ctx, acc.ID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Log.Info("Creating recruiter profile on first access", "recruiter_id", acc.ID)
		profile, err = u.profileRepo.Upsert(ctx, acc.ID, domain.RecruiterProfileUpdate{})
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	profile.Name = acc.Name
	profile.Email = acc.Email
	return profile, nil
}

func (u *recruiterUsecase) UpdateMyProfile(ctx context.Context, acc *domain.Account, upd domain.RecruiterProfileUpdate) (*domain.RecruiterProfile, error) {
	profile, err := u.profileRepo.Upsert(ctx, acc.ID, upd)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	profile.Name = acc.Name
	profile.Email = acc.Email
	return profile, nil
}
