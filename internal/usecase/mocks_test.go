package usecase_test

import (
	"context"

	"consultant-tracker-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) CreateUser(ctx context.Context, acc *domain.Account) (domain.SyncOutcome, error) {
	args := m.Called(ctx, acc)
	return args.Get(0).(domain.SyncOutcome), args.Error(1)
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockCredentialStore) AccountByID(ctx context.Context, role domain.Role, id string) (*domain.Account, error) {
	args := m.Called(ctx, role, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockCredentialStore) ListUsers(ctx context.Context, role *domain.Role, skip, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, role, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockCredentialStore) UpdateUser(ctx context.Context, role domain.Role, id string, upd domain.UpdateUser) (*domain.Account, domain.SyncOutcome, error) {
	args := m.Called(ctx, role, id, upd)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.SyncOutcome), args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).(domain.SyncOutcome), args.Error(2)
}

func (m *MockCredentialStore) DeleteUser(ctx context.Context, role domain.Role, id string) (domain.SyncOutcome, error) {
	args := m.Called(ctx, role, id)
	return args.Get(0).(domain.SyncOutcome), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.JobDescription) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.JobDescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobDescription), args.Error(1)
}

func (m *MockJobRepo) GetAll(ctx context.Context, status string, skip, limit int) ([]domain.JobDescription, error) {
	args := m.Called(ctx, status, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobDescription), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, id string, upd domain.JobUpdate) (*domain.JobDescription, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobDescription), args.Error(1)
}

type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) GetByConsultant(ctx context.Context, consultantID string) ([]domain.Submission, error) {
	args := m.Called(ctx, consultantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) GetAll(ctx context.Context, recruiterID string) ([]domain.Submission, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) (*domain.Submission, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

type MockRecruiterProfileRepo struct {
	mock.Mock
}

func (m *MockRecruiterProfileRepo) GetByRecruiterID(ctx context.Context, recruiterID string) (*domain.RecruiterProfile, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruiterProfile), args.Error(1)
}

func (m *MockRecruiterProfileRepo) Upsert(ctx context.Context, recruiterID string, upd domain.RecruiterProfileUpdate) (*domain.RecruiterProfile, error) {
	args := m.Called(ctx, recruiterID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruiterProfile), args.Error(1)
}

type MockConsultantProfileRepo struct {
	mock.Mock
}

func (m *MockConsultantProfileRepo) GetByConsultantID(ctx context.Context, consultantID string) (*domain.ConsultantProfile, error) {
	args := m.Called(ctx, consultantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsultantProfile), args.Error(1)
}

func (m *MockConsultantProfileRepo) Upsert(ctx context.Context, consultantID string, upd domain.ConsultantProfileUpdate) (*domain.ConsultantProfile, error) {
	args := m.Called(ctx, consultantID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsultantProfile), args.Error(1)
}

func (m *MockConsultantProfileRepo) GetAll(ctx context.Context, skip, limit int) ([]domain.ConsultantProfile, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConsultantProfile), args.Error(1)
}

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Available() bool {
	return m.Called().Bool(0)
}

func (m *MockClassifier) Classify(ctx context.Context, text string) (*domain.JobClassification, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobClassification), args.Error(1)
}
