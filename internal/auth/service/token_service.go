package service

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
)

// tokenService implements TokenService with an unsigned base64 encoding.
type tokenService struct {
	now func() time.Time
}

func (t *tokenService) Issue(username, email string) (string, *authDomain.Claims) {
	claims := &authDomain.Claims{
		Username: username,
		IssuedAt: t.now().UTC().Truncate(time.Millisecond),
		Nonce:    newNonce(),
		Email:    email,
	}
	return t.Encode(claims), claims
}

func (t *tokenService) Encode(claims *authDomain.Claims) string {
	parts := []string{
		claims.Username,
		strconv.FormatInt(claims.IssuedAt.UnixMilli(), 10),
		claims.Nonce,
	}
	if claims.Email != "" {
		parts = append(parts, claims.Email)
	}
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, authDomain.TokenSeparator)))
}

func (t *tokenService) Decode(token string) (*authDomain.Claims, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	parts := strings.Split(string(raw), authDomain.TokenSeparator)
	if len(parts) < 3 || parts[0] == "" {
		return nil, authDomain.ErrInvalidToken
	}

	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	claims := &authDomain.Claims{
		Username: parts[0],
		IssuedAt: time.UnixMilli(millis).UTC(),
		Nonce:    parts[2],
	}
	if len(parts) > 3 {
		claims.Email = parts[3]
	}
	return claims, nil
}

// newNonce returns 32 hex characters of a UUIDv7.
func newNonce() string {
	return strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
}

// NewTokenService creates a TokenService using the wall clock.
func NewTokenService() TokenService {
	return &tokenService{now: time.Now}
}

// NewTokenServiceWithClock creates a TokenService reading time from now.
func NewTokenServiceWithClock(now func() time.Time) TokenService {
	return &tokenService{now: now}
}
