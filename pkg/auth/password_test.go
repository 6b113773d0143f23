package auth

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		shouldFail bool
	}{
		{
			name:       "valid password",
			password:   "SecurePass123",
			shouldFail: false,
		},
		{
			name:       "minimum length accepted",
			password:   "abc123",
			shouldFail: false,
		},
		{
			name:       "too short",
			password:   "abc12",
			shouldFail: true,
		},
		{
			name:       "empty",
			password:   "",
			shouldFail: true,
		},
		{
			name:       "maximum length accepted",
			password:   strings.Repeat("a", 128),
			shouldFail: false,
		},
		{
			name:       "too long",
			password:   strings.Repeat("a", 129),
			shouldFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.shouldFail && err == nil {
				t.Errorf("expected error for password %q, got nil", tt.password)
			}
			if !tt.shouldFail && err != nil {
				t.Errorf("expected no error for password %q, got %v", tt.password, err)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	password := "SecurePass123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == password {
		t.Error("hash must not equal the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "SecurePass123"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("two hashes of the same password must differ")
	}
}

func TestComparePassword(t *testing.T) {
	password := "SecurePass123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if err := ComparePassword(hash, password); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := ComparePassword(hash, "WrongPass123"); err == nil {
		t.Error("expected mismatch for wrong password")
	}
}
