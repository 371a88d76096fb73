// Package domain defines the dashboard authentication model.
//
// The scheme is demo grade: a session token is the base64 encoding of
// "username:issuedAtMillis:nonce[:email]" with no signature, and the single admin
// password is a fixed configured value. Anyone who can base64-encode a recent
// timestamp can mint a valid token. Replace with signed tokens before real use.
package domain

import "time"

const (
	// AdminUsername is always accepted as a login name regardless of length.
	AdminUsername = "admin"

	// DefaultAdminPassword is used when ADMIN_PASSWORD is not configured.
	DefaultAdminPassword = "admin123"

	// SessionTTL is the default token lifetime.
	SessionTTL = 7 * 24 * time.Hour

	// MinUsernameLength applies to every username except AdminUsername.
	MinUsernameLength = 3

	// MaxUsernameLength keeps user ids short enough for storage keys.
	MaxUsernameLength = 64

	// ReservedUserID is the id of the shared legacy configuration. No username may
	// simplify to it.
	ReservedUserID = "global"

	// MinPasswordLength applies to new passwords.
	MinPasswordLength = 6

	// TokenSeparator joins the token fields before encoding.
	TokenSeparator = ":"
)
