package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/ayush-kumar-github/backendcodeecom/internal/storage"
)

// AdminUpdateInput is restricted to name, email and role. Password changes
// never travel through the admin path.
type AdminUpdateInput struct {
	Name  string
	Email string
	Role  string
}

// AdminService handles privileged account administration.
type AdminService struct {
	repo   UserRepository
	assets storage.AssetStorage
	logger *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(repo UserRepository, assets storage.AssetStorage, logger *slog.Logger) *AdminService {
	return &AdminService{
		repo:   repo,
		assets: assets,
		logger: logger,
	}
}

// ListUsers returns all accounts, paginated.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]*UserResponse, error) {
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list accounts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return usersToResponses(users), nil
}

// ListManagedUsers returns only accounts with role=user, the manager view.
func (s *AdminService) ListManagedUsers(ctx context.Context, limit, offset int) ([]*UserResponse, error) {
	users, err := s.repo.ListByRole(ctx, models.RoleUser, limit, offset)
	if err != nil {
		s.logger.Error("failed to list managed accounts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return usersToResponses(users), nil
}

// GetUser retrieves one account by id.
func (s *AdminService) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get account", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return userModelToResponse(user), nil
}

// UpdateUser applies admin mutations to name, email and role.
func (s *AdminService) UpdateUser(ctx context.Context, id string, in AdminUpdateInput) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get account", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		user.Email = email
	}
	if in.Role != "" {
		if !models.ValidRole(in.Role) {
			return nil, models.ErrValidation
		}
		user.Role = in.Role
	}

	updatedUser, err := s.repo.Update(ctx, id, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update account", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("account updated by admin", slog.String("user_id", id))
	return userModelToResponse(updatedUser), nil
}

// DeleteUser removes an account. The externally hosted avatar is released
// first; if that fails the record is kept so no asset is orphaned.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get account", slog.String("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if user.AvatarID != "" {
		if err := s.assets.Destroy(ctx, user.AvatarID); err != nil {
			s.logger.Error("failed to release avatar, aborting delete",
				slog.String("user_id", id),
				slog.String("asset_id", user.AvatarID),
				slog.Any("error", err))
			return models.ErrExternalService
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete account", slog.String("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("account deleted", slog.String("user_id", id))
	return nil
}

func usersToResponses(users []*models.User) []*UserResponse {
	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, userModelToResponse(user))
	}
	return responses
}
