package usecase_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/internal/usecase"
	"consultant-tracker-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubmissionApply(t *testing.T) {
	jobID := uuid.NewString()
	job := &domain.JobDescription{
		ID: jobID, RecruiterID: recruiterAcc.ID, Title: "Go Engineer",
		Description: "Backend work", Status: domain.JobStatusOpen, TechRequired: []string{"Go"},
	}

	t.Run("Should copy recruiter from the job and start as SUBMITTED", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		subRepo := new(MockSubmissionRepo)
		store := new(MockCredentialStore)
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, store, profiles, newUploadStore(t))

		jobRepo.On("GetByID", mock.Anything, jobID).Return(job, nil)
		profiles.On("GetByConsultantID", mock.Anything, consultantAcc.ID).
			Return(&domain.ConsultantProfile{ConsultantID: consultantAcc.ID}, nil)
		subRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)
		store.On("AccountByID", mock.Anything, domain.RoleConsultant, consultantAcc.ID).
			Return(consultantAcc, nil)

		sub, err := uc.Apply(context.Background(), consultantAcc, jobID, "interested",
			"resume.pdf", 4, strings.NewReader("data"))

		assert.NoError(t, err)
		assert.Equal(t, recruiterAcc.ID, sub.RecruiterID)
		assert.Equal(t, consultantAcc.ID, sub.ConsultantID)
		assert.Equal(t, domain.StatusSubmitted, sub.Status)
		assert.Equal(t, "interested", *sub.Comments)
		assert.Equal(t, "Go Engineer", sub.JDTitle)
		assert.NotEmpty(t, sub.ResumePath)
	})

	t.Run("Should create a default profile for first-time applicants", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		subRepo := new(MockSubmissionRepo)
		store := new(MockCredentialStore)
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, store, profiles, newUploadStore(t))

		jobRepo.On("GetByID", mock.Anything, jobID).Return(job, nil)
		profiles.On("GetByConsultantID", mock.Anything, consultantAcc.ID).
			Return(nil, domain.ErrNotFound)
		profiles.On("Upsert", mock.Anything, consultantAcc.ID, domain.ConsultantProfileUpdate{}).
			Return(&domain.ConsultantProfile{ConsultantID: consultantAcc.ID}, nil)
		subRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		store.On("AccountByID", mock.Anything, domain.RoleConsultant, consultantAcc.ID).
			Return(consultantAcc, nil)

		_, err := uc.Apply(context.Background(), consultantAcc, jobID, "",
			"resume.pdf", 4, strings.NewReader("data"))

		assert.NoError(t, err)
		profiles.AssertCalled(t, "Upsert", mock.Anything, consultantAcc.ID, domain.ConsultantProfileUpdate{})
	})

	t.Run("Should not block the application when the profile write fails", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		subRepo := new(MockSubmissionRepo)
		store := new(MockCredentialStore)
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, store, profiles, newUploadStore(t))

		jobRepo.On("GetByID", mock.Anything, jobID).Return(job, nil)
		profiles.On("GetByConsultantID", mock.Anything, consultantAcc.ID).
			Return(nil, domain.ErrNotFound)
		profiles.On("Upsert", mock.Anything, consultantAcc.ID, mock.Anything).
			Return(nil, errors.New("db down"))
		subRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		store.On("AccountByID", mock.Anything, domain.RoleConsultant, consultantAcc.ID).
			Return(consultantAcc, nil)

		sub, err := uc.Apply(context.Background(), consultantAcc, jobID, "",
			"resume.pdf", 4, strings.NewReader("data"))

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusSubmitted, sub.Status)
	})

	t.Run("Should leave the file behind when the insert fails", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		subRepo := new(MockSubmissionRepo)
		profiles := new(MockConsultantProfileRepo)
		uploads := newUploadStore(t)
		uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, new(MockCredentialStore), profiles, uploads)

		jobRepo.On("GetByID", mock.Anything, jobID).Return(job, nil)
		profiles.On("GetByConsultantID", mock.Anything, consultantAcc.ID).
			Return(&domain.ConsultantProfile{ConsultantID: consultantAcc.ID}, nil)

		var savedPath string
		subRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			savedPath = args.Get(1).(*domain.Submission).ResumePath
		}).Return(errors.New("insert failed"))

		_, err := uc.Apply(context.Background(), consultantAcc, jobID, "",
			"resume.pdf", 4, strings.NewReader("data"))

		assert.Error(t, err)
		full, resolveErr := uploads.Resolve(savedPath)
		assert.NoError(t, resolveErr)
		_, statErr := os.Stat(full)
		assert.NoError(t, statErr)
	})

	t.Run("Should reject applications to closed jobs", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		subRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, new(MockCredentialStore), new(MockConsultantProfileRepo), newUploadStore(t))

		closed := *job
		closed.Status = domain.JobStatusClosed
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&closed, nil)

		_, err := uc.Apply(context.Background(), consultantAcc, jobID, "",
			"resume.pdf", 4, strings.NewReader("data"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not open")
		subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject applications to missing jobs before touching storage", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		subRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, new(MockCredentialStore), new(MockConsultantProfileRepo), newUploadStore(t))

		jobRepo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

		_, err := uc.Apply(context.Background(), consultantAcc, "missing", "",
			"resume.pdf", 4, strings.NewReader("data"))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
		subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSubmissionListAll(t *testing.T) {
	t.Run("Should scope recruiters to their own submissions", func(t *testing.T) {
		subRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(subRepo, new(MockJobRepo), new(MockCredentialStore), new(MockConsultantProfileRepo), newUploadStore(t))

		subRepo.On("GetAll", mock.Anything, recruiterAcc.ID).Return([]domain.Submission{}, nil)

		_, err := uc.ListAll(context.Background(), recruiterAcc)
		assert.NoError(t, err)
		subRepo.AssertCalled(t, "GetAll", mock.Anything, recruiterAcc.ID)
	})

	t.Run("Should give admins the unscoped list", func(t *testing.T) {
		subRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(subRepo, new(MockJobRepo), new(MockCredentialStore), new(MockConsultantProfileRepo), newUploadStore(t))

		subRepo.On("GetAll", mock.Anything, "").Return([]domain.Submission{}, nil)

		_, err := uc.ListAll(context.Background(), adminAcc)
		assert.NoError(t, err)
		subRepo.AssertCalled(t, "GetAll", mock.Anything, "")
	})

	t.Run("Should degrade missing references with sentinels", func(t *testing.T) {
		subRepo := new(MockSubmissionRepo)
		jobRepo := new(MockJobRepo)
		store := new(MockCredentialStore)
		uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, store, new(MockConsultantProfileRepo), newUploadStore(t))

		subRepo.On("GetAll", mock.Anything, "").Return([]domain.Submission{
			{ID: "s1", JDID: "gone-job", ConsultantID: "gone-user"},
		}, nil)
		store.On("AccountByID", mock.Anything, domain.RoleConsultant, "gone-user").
			Return(nil, domain.ErrNotFound)
		jobRepo.On("GetByID", mock.Anything, "gone-job").Return(nil, domain.ErrNotFound)

		subs, err := uc.ListAll(context.Background(), adminAcc)
		assert.NoError(t, err)
		assert.Equal(t, "Unknown", subs[0].ConsultantName)
		assert.Equal(t, "", subs[0].ConsultantEmail)
		assert.Equal(t, "Unknown", subs[0].JDTitle)
	})
}

func TestSubmissionUpdateStatus(t *testing.T) {
	subID := uuid.NewString()
	stored := &domain.Submission{
		ID: subID, JDID: "j1", ConsultantID: consultantAcc.ID,
		RecruiterID: recruiterAcc.ID, Status: domain.StatusSubmitted,
	}

	expectEnrichment := func(jobRepo *MockJobRepo, store *MockCredentialStore) {
		store.On("AccountByID", mock.Anything, domain.RoleConsultant, consultantAcc.ID).
			Return(consultantAcc, nil)
		jobRepo.On("GetByID", mock.Anything, "j1").
			Return(&domain.JobDescription{ID: "j1", Title: "Go Engineer"}, nil)
	}

	t.Run("Should accept every defined status", func(t *testing.T) {
		for _, status := range domain.AllSubmissionStatuses {
			subRepo := new(MockSubmissionRepo)
			jobRepo := new(MockJobRepo)
			store := new(MockCredentialStore)
			uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, store, new(MockConsultantProfileRepo), newUploadStore(t))

			updated := *stored
			updated.Status = status
			subRepo.On("GetByID", mock.Anything, subID).Return(stored, nil)
			subRepo.On("UpdateStatus", mock.Anything, subID, status).Return(&updated, nil)
			expectEnrichment(jobRepo, store)

			sub, err := uc.UpdateStatus(context.Background(), recruiterAcc, subID, status)
			assert.NoError(t, err, "status %s", status)
			assert.Equal(t, status, sub.Status)
		}
	})

	t.Run("Should reject unknown statuses", func(t *testing.T) {
		uc := usecase.NewSubmissionUsecase(new(MockSubmissionRepo), new(MockJobRepo), new(MockCredentialStore), new(MockConsultantProfileRepo), newUploadStore(t))

		_, err := uc.UpdateStatus(context.Background(), recruiterAcc, subID, domain.SubmissionStatus("ARCHIVED"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid submission status")
	})

	t.Run("Should reject recruiters who do not own the submission", func(t *testing.T) {
		subRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(subRepo, new(MockJobRepo), new(MockCredentialStore), new(MockConsultantProfileRepo), newUploadStore(t))

		subRepo.On("GetByID", mock.Anything, subID).Return(stored, nil)

		other := &domain.Account{ID: uuid.NewString(), Role: domain.RoleRecruiter}
		_, err := uc.UpdateStatus(context.Background(), other, subID, domain.StatusInterview)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Should let admins update any submission", func(t *testing.T) {
		subRepo := new(MockSubmissionRepo)
		jobRepo := new(MockJobRepo)
		store := new(MockCredentialStore)
		uc := usecase.NewSubmissionUsecase(subRepo, jobRepo, store, new(MockConsultantProfileRepo), newUploadStore(t))

		updated := *stored
		updated.Status = domain.StatusOffer
		subRepo.On("GetByID", mock.Anything, subID).Return(stored, nil)
		subRepo.On("UpdateStatus", mock.Anything, subID, domain.StatusOffer).Return(&updated, nil)
		expectEnrichment(jobRepo, store)

		sub, err := uc.UpdateStatus(context.Background(), adminAcc, subID, domain.StatusOffer)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusOffer, sub.Status)
	})
}
