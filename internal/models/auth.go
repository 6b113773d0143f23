package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of a session credential. The credential is
// self-contained: integrity and expiry are verifiable without a store trip.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
