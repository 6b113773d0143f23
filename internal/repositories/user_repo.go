package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ayush-kumar-github/backendcodeecom/internal/database"
	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password_hash, role, avatar_id, avatar_url, reset_token_digest, reset_token_expiry, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner interface for scanning user rows (single row or result set)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var avatarID, avatarURL *string

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &avatarID, &avatarURL,
		&user.ResetTokenDigest, &user.ResetTokenExpiry,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if avatarID != nil {
		user.AvatarID = *avatarID
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}

	return &user, nil
}

func scanUserRows(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := make([]*models.User, 0)

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

// GetByResetDigest finds the account holding an outstanding reset token.
// Tokens whose expiry has passed are filtered out here, not by the caller.
func (r *UserRepository) GetByResetDigest(ctx context.Context, digest string, now time.Time) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token_digest = $1 AND reset_token_expiry > $2`

	return scanUserRow(r.pool.QueryRow(ctx, query, digest, now))
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return scanUserRows(rows)
}

func (r *UserRepository) ListByRole(ctx context.Context, role string, limit, offset int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}

	return scanUserRows(rows)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, role, avatar_id, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		nullIfEmpty(user.AvatarID), nullIfEmpty(user.AvatarURL),
		user.CreatedAt, user.UpdatedAt,
	))
}

// Update writes the mutable profile fields: name, email, role and avatar.
// Password and reset-token fields have dedicated writers.
func (r *UserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET name = $1, email = $2, role = $3, avatar_id = $4, avatar_url = $5, updated_at = $6
		WHERE id = $7
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.Role,
		nullIfEmpty(user.AvatarID), nullIfEmpty(user.AvatarURL),
		user.UpdatedAt, id,
	))
}

// UpdatePassword replaces the password hash and clears any outstanding
// reset token in the same statement, keeping the single-use invariant
// atomic at the record level.
func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `
		UPDATE users SET password_hash = $1, reset_token_digest = NULL, reset_token_expiry = NULL, updated_at = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id string, digest string, expiresAt time.Time) error {
	query := `
		UPDATE users SET reset_token_digest = $1, reset_token_expiry = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, digest, expiresAt, time.Now(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	query := `
		UPDATE users SET reset_token_digest = NULL, reset_token_expiry = NULL, updated_at = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
