package models

import (
	"testing"
	"time"
)

func TestHasPendingReset(t *testing.T) {
	now := time.Now()
	digest := "abc123digest"
	future := now.Add(10 * time.Minute)
	past := now.Add(-10 * time.Minute)

	tests := []struct {
		name     string
		user     User
		expected bool
	}{
		{
			name:     "no token",
			user:     User{},
			expected: false,
		},
		{
			name:     "valid token",
			user:     User{ResetTokenDigest: &digest, ResetTokenExpiry: &future},
			expected: true,
		},
		{
			name:     "expired token",
			user:     User{ResetTokenDigest: &digest, ResetTokenExpiry: &past},
			expected: false,
		},
		{
			name:     "digest without expiry",
			user:     User{ResetTokenDigest: &digest},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.HasPendingReset(now); got != tt.expected {
				t.Errorf("HasPendingReset() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	valid := []string{RoleUser, RoleManager, RoleAdmin}
	for _, role := range valid {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}

	for _, role := range []string{"", "superuser", "Admin"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}
