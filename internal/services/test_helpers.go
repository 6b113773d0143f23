package services

import (
	"context"
	"io"
	"time"

	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/ayush-kumar-github/backendcodeecom/internal/storage"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc          func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*models.User, error)
	GetByResetDigestFunc func(ctx context.Context, digest string, now time.Time) (*models.User, error)
	ListFunc             func(ctx context.Context, limit, offset int) ([]*models.User, error)
	ListByRoleFunc       func(ctx context.Context, role string, limit, offset int) ([]*models.User, error)
	CreateFunc           func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc           func(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdatePasswordFunc   func(ctx context.Context, id string, passwordHash string) error
	SetResetTokenFunc    func(ctx context.Context, id string, digest string, expiresAt time.Time) error
	ClearResetTokenFunc  func(ctx context.Context, id string) error
	DeleteFunc           func(ctx context.Context, id string) error
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByResetDigest(ctx context.Context, digest string, now time.Time) (*models.User, error) {
	if m.GetByResetDigestFunc != nil {
		return m.GetByResetDigestFunc(ctx, digest, now)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role string, limit, offset int) ([]*models.User, error) {
	if m.ListByRoleFunc != nil {
		return m.ListByRoleFunc(ctx, role, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id string, digest string, expiresAt time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, digest, expiresAt)
	}
	return nil
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, id string) error {
	if m.ClearResetTokenFunc != nil {
		return m.ClearResetTokenFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAssetStorage implements storage.AssetStorage for testing
type MockAssetStorage struct {
	UploadFunc  func(ctx context.Context, body io.Reader, contentType string) (*storage.Asset, error)
	DestroyFunc func(ctx context.Context, assetID string) error
}

func (m *MockAssetStorage) Upload(ctx context.Context, body io.Reader, contentType string) (*storage.Asset, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, body, contentType)
	}
	return &storage.Asset{ID: "mock-asset", URL: "https://assets.example.com/mock-asset"}, nil
}

func (m *MockAssetStorage) Destroy(ctx context.Context, assetID string) error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, assetID)
	}
	return nil
}

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	SendPasswordResetEmailFunc func(ctx context.Context, email, resetURL string, expiresAt time.Time) error
}

func (m *MockEmailService) SendPasswordResetEmail(ctx context.Context, email, resetURL string, expiresAt time.Time) error {
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(ctx, email, resetURL, expiresAt)
	}
	return nil
}

// StubSessionIssuer implements SessionIssuer with a fixed token
type StubSessionIssuer struct {
	Token string
	Err   error
}

func (s *StubSessionIssuer) IssueSession(userID, email string) (string, time.Time, error) {
	if s.Err != nil {
		return "", time.Time{}, s.Err
	}
	token := s.Token
	if token == "" {
		token = "stub-session-token"
	}
	return token, time.Now().Add(72 * time.Hour), nil
}

// NewTestUser creates a user model for testing
func NewTestUser(id, email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
