package models

import (
	"time"
)

const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             string // "user", "manager", "admin"
	AvatarID         string // Asset-host identifier for the stored avatar
	AvatarURL        string
	ResetTokenDigest *string    // SHA-256 digest of an outstanding reset token
	ResetTokenExpiry *time.Time // Absent whenever ResetTokenDigest is absent
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPendingReset reports whether the user carries a reset token that is
// still valid at the given instant.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenDigest != nil && u.ResetTokenExpiry != nil && now.Before(*u.ResetTokenExpiry)
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}
