package usecases_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"hostel-desk.backend/internal/domain/entities"
	"hostel-desk.backend/pkg/redis"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByMatricNo(ctx context.Context, matricNo string) (*entities.User, error) {
	args := m.Called(ctx, matricNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// Mock ComplaintRepository
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, complaint *entities.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) GetByID(ctx context.Context, id uint) (*entities.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) Update(ctx context.Context, complaint *entities.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) UpdateStatus(ctx context.Context, id uint, status entities.ComplaintStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockComplaintRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockComplaintRepository) ListByUserID(ctx context.Context, userID uint) ([]*entities.Complaint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) List(ctx context.Context, limit, offset int) ([]*entities.Complaint, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Complaint), args.Get(1).(int64), args.Error(2)
}

// In-memory session store
type fakeSessionStore struct {
	sessions map[string]*redis.SessionData
	fail     error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*redis.SessionData{}}
}

func (s *fakeSessionStore) CreateSession(_ context.Context, sessionID string, data *redis.SessionData, _ time.Duration) error {
	if s.fail != nil {
		return s.fail
	}
	s.sessions[sessionID] = data
	return nil
}

func (s *fakeSessionStore) GetSession(_ context.Context, sessionID string) (*redis.SessionData, error) {
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, io.EOF
	}
	return data, nil
}

func (s *fakeSessionStore) DeleteSession(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// In-memory evidence store
type fakeEvidenceStore struct {
	saved map[string]string
	fail  error
}

func newFakeEvidenceStore() *fakeEvidenceStore {
	return &fakeEvidenceStore{saved: map[string]string{}}
}

func (s *fakeEvidenceStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if s.fail != nil {
		return "", s.fail
	}
	data, _ := io.ReadAll(r)
	s.saved[filename] = string(data)
	return filename, nil
}

func (s *fakeEvidenceStore) URL(_ context.Context, filename string, _ time.Duration) (string, error) {
	return "/uploads/" + filename, nil
}

func (s *fakeEvidenceStore) Delete(_ context.Context, filename string) error {
	delete(s.saved, filename)
	return nil
}
