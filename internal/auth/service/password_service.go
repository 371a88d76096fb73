package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/deliverydash/internal/errors"
)

// argon2idPrefix marks an already hashed admin password.
const argon2idPrefix = "$argon2id$"

// PasswordService checks candidate passwords against the dashboard password.
type PasswordService interface {
	Verify(password string) bool
}

type passwordService struct {
	hasher *pwdhash.PasswordHasher
	hash   string
}

// NewPasswordService keeps adminPassword only as an Argon2id hash. A value that is
// already an Argon2id hash (ADMIN_PASSWORD="$argon2id$...") is used as is.
func NewPasswordService(adminPassword string) (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	hash := adminPassword
	if !strings.HasPrefix(adminPassword, argon2idPrefix) {
		hash, err = hasher.Hash([]byte(adminPassword))
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to hash admin password")
		}
	}

	return &passwordService{hasher: hasher, hash: hash}, nil
}

// Verify runs in constant time with respect to the candidate.
func (s *passwordService) Verify(password string) bool {
	ok, err := s.hasher.Verify([]byte(password), s.hash)
	if err != nil {
		return false
	}
	return ok
}
