package logger

import (
	"net/url"
	"strings"
)

// sensitiveParams are query parameters that must never reach the logs.
var sensitiveParams = map[string]bool{
	"token":            true,
	"password":         true,
	"confirm_password": true,
	"reset_token":      true,
	"secret":           true,
	"api_key":          true,
}

// SanitizeQueryString reports whether a raw query string carries sensitive
// parameters and therefore must be redacted from request logs.
func SanitizeQueryString(rawQuery string) bool {
	if rawQuery == "" {
		return false
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Unparseable query strings are redacted rather than logged raw.
		return true
	}

	for key := range values {
		if sensitiveParams[strings.ToLower(key)] {
			return true
		}
	}

	return false
}

// SanitizedEmail masks an email address for logging (e.g., "u***@e***.com").
func SanitizedEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "[invalid-email]"
	}

	username := parts[0]
	domain := parts[1]

	if len(username) > 1 {
		username = string(username[0]) + strings.Repeat("*", len(username)-1)
	}

	// Keep the TLD, mask the rest of the domain
	domainParts := strings.Split(domain, ".")
	if len(domainParts) > 1 {
		for i := 0; i < len(domainParts)-1; i++ {
			domainParts[i] = strings.Repeat("*", len(domainParts[i]))
		}
		domain = strings.Join(domainParts, ".")
	}

	return username + "@" + domain
}

// SanitizePath redacts path segments that embed secrets, such as the
// plaintext reset token in /password/reset/{token}.
func SanitizePath(path string) string {
	const resetPrefix = "/password/reset/"
	if idx := strings.Index(path, resetPrefix); idx >= 0 {
		return path[:idx+len(resetPrefix)] + "[REDACTED]"
	}
	return path
}
