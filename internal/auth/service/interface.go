// Package service provides the session token codec.
package service

import (
	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
)

// TokenService encodes and decodes session tokens.
type TokenService interface {
	// Issue creates claims for username at the current time with a fresh nonce and
	// returns the encoded token alongside them.
	Issue(username, email string) (string, *authDomain.Claims)

	// Encode renders claims as "username:millis:nonce[:email]" in standard base64.
	Encode(claims *authDomain.Claims) string

	// Decode parses a token. Malformed input yields ErrInvalidToken, never a panic.
	Decode(token string) (*authDomain.Claims, error)
}
