package domain

import (
	"strings"
	"time"
)

// Claims is the decoded content of a session token.
type Claims struct {
	Username string
	IssuedAt time.Time
	Nonce    string
	Email    string
}

// ExpiresAt returns when the token stops being accepted for the given lifetime.
func (c *Claims) ExpiresAt(ttl time.Duration) time.Time {
	return c.IssuedAt.Add(ttl)
}

// Expired reports whether the token is at least ttl old at now.
func (c *Claims) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.IssuedAt) >= ttl
}

// User returns the public view of the token owner.
func (c *Claims) User() User {
	return User{Username: c.Username, Email: c.Email}
}

// UserID returns the storage identifier of the token owner, see UserID.
func (c *Claims) UserID() string {
	return UserID(c.Username)
}

// UserID simplifies a username into a storage key segment: lower case, every
// character outside [a-z0-9] replaced by '_'.
func UserID(username string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToLower(username))
}

// User is the account identity shown to clients.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Session is the result of a successful login or account change.
type Session struct {
	Token     string
	User      User
	ExpiresAt time.Time
}

// AccountInfo describes the current session.
type AccountInfo struct {
	Username  string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsUsernameAllowed reports whether username may log in: the admin name, or any name
// of MinUsernameLength to MaxUsernameLength characters without the token separator
// whose UserID is not ReservedUserID.
func IsUsernameAllowed(username string) bool {
	if strings.Contains(username, TokenSeparator) || len(username) > MaxUsernameLength {
		return false
	}
	if UserID(username) == ReservedUserID {
		return false
	}
	return username == AdminUsername || len(username) >= MinUsernameLength
}

// ChangeEmailInput contains the parameters for changing the session email.
type ChangeEmailInput struct {
	Password string
	NewEmail string
}

// ChangePasswordInput contains the parameters for changing the password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ChangeUsernameInput contains the parameters for changing the username.
type ChangeUsernameInput struct {
	Password    string
	NewUsername string
}
