package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/ayush-kumar-github/backendcodeecom/internal/storage"
	pkgauth "github.com/ayush-kumar-github/backendcodeecom/pkg/auth"
)

// SessionIssuer mints session credentials for authenticated accounts.
type SessionIssuer interface {
	IssueSession(userID, email string) (string, time.Time, error)
}

// EmailService is the notifier contract. Any failure is treated uniformly.
type EmailService interface {
	SendPasswordResetEmail(ctx context.Context, email, resetURL string, expiresAt time.Time) error
}

// AvatarUpload carries an uploaded avatar file into the service layer.
type AvatarUpload struct {
	Body        io.Reader
	ContentType string
}

// SignupInput is the validated input for account creation.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Avatar   *AvatarUpload
}

// AuthService orchestrates signup, login and the password lifecycle.
type AuthService struct {
	repo          UserRepository
	sessions      SessionIssuer
	assets        storage.AssetStorage
	email         EmailService
	logger        *slog.Logger
	resetTokenTTL time.Duration
	resetURLBase  string
}

// NewAuthService creates a new AuthService
func NewAuthService(
	repo UserRepository,
	sessions SessionIssuer,
	assets storage.AssetStorage,
	email EmailService,
	logger *slog.Logger,
	resetTokenTTL time.Duration,
	resetURLBase string,
) *AuthService {
	return &AuthService{
		repo:          repo,
		sessions:      sessions,
		assets:        assets,
		email:         email,
		logger:        logger,
		resetTokenTTL: resetTokenTTL,
		resetURLBase:  resetURLBase,
	}
}

// UserResponse represents an account in API responses. The password hash
// and reset-token fields are never round-tripped to callers.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AuthResponse is the result of any operation that issues a session.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

// Signup registers a new account. The avatar is mandatory: it is uploaded
// to the asset host before the record is created, and released again if
// creation fails.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, models.ErrValidation
	}
	if in.Avatar == nil || in.Avatar.Body == nil {
		s.logger.Info("signup rejected: missing avatar")
		return nil, models.ErrValidation
	}
	if err := pkgauth.ValidatePassword(in.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	_, err := s.repo.GetByEmail(ctx, in.Email)
	if err == nil {
		s.logger.Info("signup failed: account already exists")
		return nil, models.ErrConflict
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check for existing account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	hashedPassword, err := pkgauth.HashPassword(in.Password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	asset, err := s.assets.Upload(ctx, in.Avatar.Body, in.Avatar.ContentType)
	if err != nil {
		s.logger.Error("failed to upload avatar", slog.Any("error", err))
		return nil, models.ErrExternalService
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
		AvatarID:     asset.ID,
		AvatarURL:    asset.URL,
	}

	createdUser, err := s.repo.Create(ctx, user)
	if err != nil {
		// Release the uploaded asset so the failed signup leaves nothing behind.
		if destroyErr := s.assets.Destroy(ctx, asset.ID); destroyErr != nil {
			s.logger.Error("failed to release avatar after signup failure",
				slog.String("asset_id", asset.ID), slog.Any("error", destroyErr))
		}
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("account registered", slog.String("user_id", createdUser.ID))
	return s.issueSessionResponse(createdUser)
}

// Login authenticates an account by email and password. An unknown email
// and a wrong password produce the identical error, so responses cannot be
// used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, models.ErrValidation
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login failed: invalid credentials")
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get account by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: invalid credentials")
		return nil, models.ErrUnauthorized
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	return s.issueSessionResponse(user)
}

// ForgotPassword issues a time-bounded reset token and mails it to the
// account holder. The digest is persisted before the notifier is invoked;
// if the send fails the digest is cleared again so no valid token exists
// that the holder never received.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.ErrValidation
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("forgot-password for unknown email")
			return models.ErrNotFound
		}
		s.logger.Error("failed to get account by email", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if user.HasPendingReset(time.Now()) {
		s.logger.Info("superseding outstanding reset token", slog.String("user_id", user.ID))
	}

	plainToken, digest, err := pkgauth.GenerateResetToken()
	if err != nil {
		s.logger.Error("failed to generate reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	expiresAt := time.Now().Add(s.resetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, digest, expiresAt); err != nil {
		s.logger.Error("failed to persist reset token", slog.String("user_id", user.ID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", strings.TrimRight(s.resetURLBase, "/"), plainToken)

	if err := s.email.SendPasswordResetEmail(ctx, user.Email, resetURL, expiresAt); err != nil {
		s.logger.Error("failed to send reset email, rolling back token",
			slog.String("user_id", user.ID), slog.Any("error", err))
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.logger.Error("failed to roll back reset token",
				slog.String("user_id", user.ID), slog.Any("error", clearErr))
		}
		return models.ErrExternalService
	}

	s.logger.Info("password reset email sent", slog.String("user_id", user.ID))
	return nil
}

// ResetPassword consumes a reset token. The token is single-use: the
// password update clears the digest and expiry in the same record write.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, password, confirmPassword string) (*AuthResponse, error) {
	if plainToken == "" {
		return nil, models.ErrUnauthorized
	}

	digest := pkgauth.DigestResetToken(plainToken)

	user, err := s.repo.GetByResetDigest(ctx, digest, time.Now())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("reset token invalid or expired")
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to look up reset token", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if password != confirmPassword {
		return nil, fmt.Errorf("%w: password and confirmation do not match", models.ErrValidation)
	}
	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		s.logger.Error("failed to update password", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("password reset completed", slog.String("user_id", user.ID))
	return s.issueSessionResponse(user)
}

// ChangePassword replaces the password of an authenticated account after
// verifying the old one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*AuthResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get account", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, oldPassword); err != nil {
		s.logger.Info("change-password failed: old password incorrect", slog.String("user_id", userID))
		return nil, models.ErrUnauthorized
	}

	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	hashedPassword, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		s.logger.Error("failed to update password", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("password changed", slog.String("user_id", user.ID))
	return s.issueSessionResponse(user)
}

func (s *AuthService) issueSessionResponse(user *models.User) (*AuthResponse, error) {
	token, expiresAt, err := s.sessions.IssueSession(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to issue session", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userModelToResponse(user),
	}, nil
}

// userModelToResponse converts an account model to its response DTO
func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
