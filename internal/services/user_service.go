package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/ayush-kumar-github/backendcodeecom/internal/storage"
)

// UserRepository is the credential-store contract the services depend on.
// All operations are atomic at single-record granularity.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetDigest(ctx context.Context, digest string, now time.Time) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	SetResetToken(ctx context.Context, id string, digest string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ProfileUpdateInput carries the optional profile mutations.
type ProfileUpdateInput struct {
	Name   string
	Email  string
	Avatar *AvatarUpload
}

// UserService handles profile reads and self-service updates.
type UserService struct {
	repo   UserRepository
	assets storage.AssetStorage
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, assets storage.AssetStorage, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		assets: assets,
		logger: logger,
	}
}

// GetProfile retrieves the authenticated account.
func (s *UserService) GetProfile(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("account not found", slog.String("user_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get account", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return userModelToResponse(user), nil
}

// UpdateProfile updates name, email and optionally the avatar. A new
// avatar is uploaded before the old one is destroyed, so an upload failure
// leaves the account with its existing avatar and the record unmodified.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdateInput) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get account", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if in.Avatar != nil && in.Avatar.Body != nil {
		newAsset, err := s.assets.Upload(ctx, in.Avatar.Body, in.Avatar.ContentType)
		if err != nil {
			s.logger.Error("failed to upload replacement avatar",
				slog.String("user_id", id), slog.Any("error", err))
			return nil, models.ErrExternalService
		}

		oldAssetID := user.AvatarID
		user.AvatarID = newAsset.ID
		user.AvatarURL = newAsset.URL

		// Release the replaced asset; a failure here orphans the old file
		// but must not fail the update that already has a valid avatar.
		if oldAssetID != "" {
			if err := s.assets.Destroy(ctx, oldAssetID); err != nil {
				s.logger.Warn("failed to destroy replaced avatar",
					slog.String("user_id", id),
					slog.String("asset_id", oldAssetID),
					slog.Any("error", err))
			}
		}
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		user.Email = email
	}

	updatedUser, err := s.repo.Update(ctx, id, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update account", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("profile updated", slog.String("user_id", id))
	return userModelToResponse(updatedUser), nil
}
