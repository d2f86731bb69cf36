package usecase_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/internal/usecase"
	"consultant-tracker-backend/pkg/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUploadStore(t *testing.T) *upload.Store {
	t.Helper()
	return upload.NewStore(t.TempDir(), 1<<20, []string{".pdf", ".doc", ".docx"})
}

func TestConsultantGetMyProfile(t *testing.T) {
	t.Run("Should create a default profile on first access", func(t *testing.T) {
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewConsultantUsecase(profiles, new(MockCredentialStore), new(MockSubmissionRepo), newUploadStore(t))

		created := &domain.ConsultantProfile{
			ID: "p1", ConsultantID: consultantAcc.ID,
			TechStack: []string{}, Certifications: []string{}, Available: true,
		}
		profiles.On("GetByConsultantID", mock.Anything, consultantAcc.ID).
			Return(nil, domain.ErrNotFound).Once()
		profiles.On("Upsert", mock.Anything, consultantAcc.ID, domain.ConsultantProfileUpdate{}).
			Return(created, nil)

		profile, err := uc.GetMyProfile(context.Background(), consultantAcc)
		assert.NoError(t, err)
		assert.Equal(t, []string{}, profile.TechStack)
		assert.Equal(t, 0.0, profile.ExperienceYears)
		assert.Equal(t, consultantAcc.Name, profile.Name)
		assert.Equal(t, consultantAcc.Email, profile.Email)
	})

	t.Run("Should return the existing profile unchanged", func(t *testing.T) {
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewConsultantUsecase(profiles, new(MockCredentialStore), new(MockSubmissionRepo), newUploadStore(t))

		existing := &domain.ConsultantProfile{
			ID: "p1", ConsultantID: consultantAcc.ID, ExperienceYears: 4, TechStack: []string{"Go"},
		}
		profiles.On("GetByConsultantID", mock.Anything, consultantAcc.ID).Return(existing, nil)

		profile, err := uc.GetMyProfile(context.Background(), consultantAcc)
		assert.NoError(t, err)
		assert.Equal(t, 4.0, profile.ExperienceYears)
		profiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestConsultantUpdateMyProfile(t *testing.T) {
	t.Run("Should carry education and skill proficiency to the store", func(t *testing.T) {
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewConsultantUsecase(profiles, new(MockCredentialStore), new(MockSubmissionRepo), newUploadStore(t))

		upd := domain.ConsultantProfileUpdate{
			Education:            map[string]interface{}{"degree": "BSc", "university": "MIT", "graduation_year": 2019},
			TechStackProficiency: map[string]string{"Go": "expert", "SQL": "intermediate"},
		}
		var recorded domain.ConsultantProfileUpdate
		profiles.On("Upsert", mock.Anything, consultantAcc.ID, mock.AnythingOfType("domain.ConsultantProfileUpdate")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(2).(domain.ConsultantProfileUpdate)
			}).
			Return(&domain.ConsultantProfile{
				ConsultantID: consultantAcc.ID,
				Education:    upd.Education, TechStackProficiency: upd.TechStackProficiency,
			}, nil)

		profile, err := uc.UpdateMyProfile(context.Background(), consultantAcc, upd)
		assert.NoError(t, err)
		assert.Equal(t, "expert", recorded.TechStackProficiency["Go"])
		assert.Equal(t, "BSc", recorded.Education["degree"])
		assert.Equal(t, "expert", profile.TechStackProficiency["Go"])
	})
}

func TestConsultantList(t *testing.T) {
	t.Run("Should substitute sentinels for orphaned profiles", func(t *testing.T) {
		profiles := new(MockConsultantProfileRepo)
		store := new(MockCredentialStore)
		uc := usecase.NewConsultantUsecase(profiles, store, new(MockSubmissionRepo), newUploadStore(t))

		profiles.On("GetAll", mock.Anything, 0, 100).Return([]domain.ConsultantProfile{
			{ID: "p1", ConsultantID: consultantAcc.ID},
			{ID: "p2", ConsultantID: "gone"},
		}, nil)
		store.On("AccountByID", mock.Anything, domain.RoleConsultant, consultantAcc.ID).
			Return(consultantAcc, nil)
		store.On("AccountByID", mock.Anything, domain.RoleConsultant, "gone").
			Return(nil, domain.ErrNotFound)

		list, err := uc.List(context.Background(), 0, 100)
		assert.NoError(t, err)
		assert.Equal(t, "Con", list[0].Name)
		assert.Equal(t, "Unknown User", list[1].Name)
		assert.Equal(t, "N/A", list[1].Email)
	})
}

func TestConsultantUploadResume(t *testing.T) {
	t.Run("Should store the file and record the path", func(t *testing.T) {
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewConsultantUsecase(profiles, new(MockCredentialStore), new(MockSubmissionRepo), newUploadStore(t))

		profiles.On("GetByConsultantID", mock.Anything, consultantAcc.ID).
			Return(nil, domain.ErrNotFound)
		var recorded domain.ConsultantProfileUpdate
		profiles.On("Upsert", mock.Anything, consultantAcc.ID, mock.AnythingOfType("domain.ConsultantProfileUpdate")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(2).(domain.ConsultantProfileUpdate)
			}).
			Return(&domain.ConsultantProfile{ConsultantID: consultantAcc.ID}, nil)

		content := "pdf bytes"
		path, err := uc.UploadResume(context.Background(), consultantAcc, "resume.pdf", int64(len(content)), strings.NewReader(content))

		assert.NoError(t, err)
		assert.NotEmpty(t, path)
		assert.NotNil(t, recorded.ResumePath)
		assert.Equal(t, path, *recorded.ResumePath)
	})

	t.Run("Should reject disallowed extensions", func(t *testing.T) {
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewConsultantUsecase(profiles, new(MockCredentialStore), new(MockSubmissionRepo), newUploadStore(t))

		_, err := uc.UploadResume(context.Background(), consultantAcc, "resume.exe", 4, strings.NewReader("data"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "allowed")
		profiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestConsultantResumePath(t *testing.T) {
	t.Run("Should report not found when no resume is recorded", func(t *testing.T) {
		profiles := new(MockConsultantProfileRepo)
		uc := usecase.NewConsultantUsecase(profiles, new(MockCredentialStore), new(MockSubmissionRepo), newUploadStore(t))

		profiles.On("GetByConsultantID", mock.Anything, "c1").
			Return(&domain.ConsultantProfile{ConsultantID: "c1"}, nil)

		_, err := uc.ResumePath(context.Background(), "c1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Resume not found")
	})

	t.Run("Should resolve a stored resume to a readable file", func(t *testing.T) {
		profiles := new(MockConsultantProfileRepo)
		store := newUploadStore(t)
		uc := usecase.NewConsultantUsecase(profiles, new(MockCredentialStore), new(MockSubmissionRepo), store)

		saved, err := store.Save("resumes", "c1_resume.pdf", 4, strings.NewReader("data"))
		assert.NoError(t, err)

		profiles.On("GetByConsultantID", mock.Anything, "c1").
			Return(&domain.ConsultantProfile{ConsultantID: "c1", ResumePath: &saved}, nil)

		full, err := uc.ResumePath(context.Background(), "c1")
		assert.NoError(t, err)
		_, statErr := os.Stat(full)
		assert.NoError(t, statErr)
	})
}

func TestConsultantStats(t *testing.T) {
	profiles := new(MockConsultantProfileRepo)
	subs := new(MockSubmissionRepo)
	uc := usecase.NewConsultantUsecase(profiles, new(MockCredentialStore), subs, newUploadStore(t))

	recent := time.Now().AddDate(0, 0, -5)
	old := time.Now().AddDate(0, 0, -60)
	subs.On("GetByConsultant", mock.Anything, consultantAcc.ID).Return([]domain.Submission{
		{Status: domain.StatusSubmitted, CreatedAt: recent},
		{Status: domain.StatusInterview, CreatedAt: recent},
		{Status: domain.StatusJoined, CreatedAt: old},
		{Status: domain.StatusRejected, CreatedAt: old},
	}, nil)

	stats, err := uc.Stats(context.Background(), consultantAcc)
	assert.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Interviews)
	assert.Equal(t, 1, stats.Joined)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 2, stats.Recent30Days)
	assert.Equal(t, 25.0, stats.SuccessRate)
	assert.Equal(t, 1, stats.ByStatus[string(domain.StatusInterview)])
}
