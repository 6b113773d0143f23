package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const resetTokenBytes = 32 // 256 bits of entropy

// GenerateResetToken produces a cryptographically random password-reset
// token and its digest. Only the digest is ever persisted; possession of
// the plaintext token proves control of the account's email.
func GenerateResetToken() (plainToken, digest string, err error) {
	tokenBytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	plainToken = base64.URLEncoding.EncodeToString(tokenBytes)
	return plainToken, DigestResetToken(plainToken), nil
}

// DigestResetToken maps a plaintext token to its stored form. SHA-256 is
// deterministic, which is what allows later lookup by digest.
func DigestResetToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}
