package integration

import (
	"fmt"
	"strings"
	"time"
)

// TestUser generates unique test user credentials using timestamp
func TestUser(suffix string) (email, password string) {
	ts := time.Now().UnixNano()
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	password = "TestPassword123!"
	return
}

// TinyPNG is a minimal valid PNG header, enough to act as an avatar upload
var TinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
}

// ExtractTokenFromResetURL pulls the plaintext token out of a reset link
// Link format: "{base}/password/reset/{token}"
func ExtractTokenFromResetURL(resetURL string) string {
	idx := strings.LastIndex(resetURL, "/")
	if idx == -1 || idx == len(resetURL)-1 {
		return ""
	}
	return resetURL[idx+1:]
}
