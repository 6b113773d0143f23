package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/ayush-kumar-github/backendcodeecom/internal/storage"
	pkgauth "github.com/ayush-kumar-github/backendcodeecom/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(repo *MockUserRepository, assets *MockAssetStorage, email *MockEmailService) *AuthService {
	if assets == nil {
		assets = &MockAssetStorage{}
	}
	if email == nil {
		email = &MockEmailService{}
	}
	return NewAuthService(
		repo,
		&StubSessionIssuer{},
		assets,
		email,
		slog.Default(),
		20*time.Minute,
		"http://localhost:3000",
	)
}

func testAvatar() *AvatarUpload {
	return &AvatarUpload{
		Body:        strings.NewReader("fake-image-bytes"),
		ContentType: "image/png",
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	var createdUser *models.User

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			user.ID = "user123"
			user.CreatedAt = time.Now()
			user.UpdatedAt = time.Now()
			createdUser = user
			return user, nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	result, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Test User",
		Email:    "User@Example.com",
		Password: "SecurePass123!",
		Avatar:   testAvatar(),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "user123", result.User.ID)
	assert.Equal(t, models.RoleUser, result.User.Role)

	// Email is lower-cased before storage
	assert.Equal(t, "user@example.com", createdUser.Email)

	// Only the bcrypt hash is persisted, never the plaintext
	assert.NotEqual(t, "SecurePass123!", createdUser.PasswordHash)
	assert.NoError(t, pkgauth.ComparePassword(createdUser.PasswordHash, "SecurePass123!"))

	// The uploaded avatar is recorded on the account
	assert.Equal(t, "mock-asset", createdUser.AvatarID)
	assert.NotEmpty(t, createdUser.AvatarURL)
}

func TestAuthService_Signup_MissingAvatar(t *testing.T) {
	svc := newAuthService(&MockUserRepository{}, nil, nil)

	result, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "SecurePass123!",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return NewTestUser("existing", email, "Existing"), nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	result, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "SecurePass123!",
		Avatar:   testAvatar(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestAuthService_Signup_CreateFailureReleasesAvatar(t *testing.T) {
	destroyedAssetID := ""

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			return nil, models.ErrInternalServer
		},
	}
	mockAssets := &MockAssetStorage{
		UploadFunc: func(ctx context.Context, body io.Reader, contentType string) (*storage.Asset, error) {
			return &storage.Asset{ID: "orphan-candidate", URL: "https://assets.example.com/orphan-candidate"}, nil
		},
		DestroyFunc: func(ctx context.Context, assetID string) error {
			destroyedAssetID = assetID
			return nil
		},
	}

	svc := newAuthService(mockUserRepo, mockAssets, nil)

	result, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "SecurePass123!",
		Avatar:   testAvatar(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrInternalServer)
	assert.Equal(t, "orphan-candidate", destroyedAssetID)
}

func TestAuthService_Signup_UploadFailure(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}
	mockAssets := &MockAssetStorage{
		UploadFunc: func(ctx context.Context, body io.Reader, contentType string) (*storage.Asset, error) {
			return nil, fmt.Errorf("bucket unavailable")
		},
	}

	svc := newAuthService(mockUserRepo, mockAssets, nil)

	result, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "SecurePass123!",
		Avatar:   testAvatar(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrExternalService)
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := pkgauth.HashPassword("SecurePass123!")
	require.NoError(t, err)

	user := NewTestUser("user123", "user@example.com", "Test User")
	user.PasswordHash = hash

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			assert.Equal(t, "user@example.com", email)
			return user, nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	result, err := svc.Login(context.Background(), "User@Example.COM", "SecurePass123!")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "user123", result.User.ID)
}

func TestAuthService_Login_CredentialErrorsAreIndistinguishable(t *testing.T) {
	hash, err := pkgauth.HashPassword("SecurePass123!")
	require.NoError(t, err)

	user := NewTestUser("user123", "user@example.com", "Test User")
	user.PasswordHash = hash

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			if email == "user@example.com" {
				return user, nil
			}
			return nil, models.ErrNotFound
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	_, wrongPasswordErr := svc.Login(context.Background(), "user@example.com", "wrong-password")
	_, unknownEmailErr := svc.Login(context.Background(), "nobody@example.com", "SecurePass123!")

	assert.ErrorIs(t, wrongPasswordErr, models.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmailErr, models.ErrUnauthorized)
	assert.Equal(t, wrongPasswordErr.Error(), unknownEmailErr.Error())
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAuthService_ForgotPassword_PersistsDigestBeforeSending(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")

	storedDigest := ""
	sentURL := ""

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		SetResetTokenFunc: func(ctx context.Context, id string, digest string, expiresAt time.Time) error {
			storedDigest = digest
			return nil
		},
	}
	mockEmail := &MockEmailService{
		SendPasswordResetEmailFunc: func(ctx context.Context, email, resetURL string, expiresAt time.Time) error {
			// The digest must already be persisted when the notifier runs
			assert.NotEmpty(t, storedDigest)
			sentURL = resetURL
			return nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, mockEmail)

	err := svc.ForgotPassword(context.Background(), "user@example.com")

	require.NoError(t, err)
	require.NotEmpty(t, sentURL)

	// The mailed link carries the plaintext token, not the stored digest
	parts := strings.Split(sentURL, "/")
	plainToken := parts[len(parts)-1]
	assert.NotEqual(t, storedDigest, plainToken)
	assert.Equal(t, storedDigest, pkgauth.DigestResetToken(plainToken))
}

func TestAuthService_ForgotPassword_SupersedesOutstandingToken(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")
	oldDigest := "old-digest"
	oldExpiry := time.Now().Add(10 * time.Minute)
	user.ResetTokenDigest = &oldDigest
	user.ResetTokenExpiry = &oldExpiry

	storedDigest := ""
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		SetResetTokenFunc: func(ctx context.Context, id string, digest string, expiresAt time.Time) error {
			storedDigest = digest
			return nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	err := svc.ForgotPassword(context.Background(), "user@example.com")

	require.NoError(t, err)
	// A repeat request replaces the outstanding token with a fresh one
	assert.NotEmpty(t, storedDigest)
	assert.NotEqual(t, oldDigest, storedDigest)
}

func TestAuthService_ForgotPassword_SendFailureRollsBackToken(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")

	tokenSet := false
	tokenCleared := false

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		SetResetTokenFunc: func(ctx context.Context, id string, digest string, expiresAt time.Time) error {
			tokenSet = true
			return nil
		},
		ClearResetTokenFunc: func(ctx context.Context, id string) error {
			assert.Equal(t, "user123", id)
			tokenCleared = true
			return nil
		},
	}
	mockEmail := &MockEmailService{
		SendPasswordResetEmailFunc: func(ctx context.Context, email, resetURL string, expiresAt time.Time) error {
			return errors.New("ses unavailable")
		},
	}

	svc := newAuthService(mockUserRepo, nil, mockEmail)

	err := svc.ForgotPassword(context.Background(), "user@example.com")

	assert.ErrorIs(t, err, models.ErrExternalService)
	assert.True(t, tokenSet)
	assert.True(t, tokenCleared)
}

func TestAuthService_ResetPassword_InvalidToken(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByResetDigestFunc: func(ctx context.Context, digest string, now time.Time) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	result, err := svc.ResetPassword(context.Background(), "bad-token", "NewPass123!", "NewPass123!")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthService_ResetPassword_ConfirmMismatchKeepsToken(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")

	passwordUpdated := false

	mockUserRepo := &MockUserRepository{
		GetByResetDigestFunc: func(ctx context.Context, digest string, now time.Time) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id string, passwordHash string) error {
			passwordUpdated = true
			return nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	result, err := svc.ResetPassword(context.Background(), "some-token", "NewPass123!", "Different123!")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.False(t, passwordUpdated, "a mismatch must not consume the token or touch the password")
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")

	storedHash := ""

	mockUserRepo := &MockUserRepository{
		GetByResetDigestFunc: func(ctx context.Context, digest string, now time.Time) (*models.User, error) {
			assert.Equal(t, pkgauth.DigestResetToken("valid-token"), digest)
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id string, passwordHash string) error {
			storedHash = passwordHash
			return nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	result, err := svc.ResetPassword(context.Background(), "valid-token", "NewPass123!", "NewPass123!")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NoError(t, pkgauth.ComparePassword(storedHash, "NewPass123!"))
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	hash, err := pkgauth.HashPassword("CurrentPass123!")
	require.NoError(t, err)

	user := NewTestUser("user123", "user@example.com", "Test User")
	user.PasswordHash = hash

	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	result, err := svc.ChangePassword(context.Background(), "user123", "wrong-old", "NewPass123!")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	hash, err := pkgauth.HashPassword("CurrentPass123!")
	require.NoError(t, err)

	user := NewTestUser("user123", "user@example.com", "Test User")
	user.PasswordHash = hash

	storedHash := ""

	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id string, passwordHash string) error {
			storedHash = passwordHash
			return nil
		},
	}

	svc := newAuthService(mockUserRepo, nil, nil)

	result, err := svc.ChangePassword(context.Background(), "user123", "CurrentPass123!", "NewPass123!")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NoError(t, pkgauth.ComparePassword(storedHash, "NewPass123!"))
}
