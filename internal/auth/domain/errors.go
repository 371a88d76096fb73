package domain

import (
	"github.com/allisson/deliverydash/internal/errors"
)

// Authentication and account errors. Their messages are returned to the client.
var (
	// ErrNoToken indicates the request carried no bearer token.
	ErrNoToken = errors.Public(errors.ErrUnauthorized, "No token provided")

	// ErrInvalidToken indicates the token could not be decoded.
	ErrInvalidToken = errors.Public(errors.ErrUnauthorized, "Invalid token")

	// ErrTokenExpired indicates the token is older than the session lifetime.
	ErrTokenExpired = errors.Public(errors.ErrUnauthorized, "Invalid token")

	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.Public(errors.ErrUnauthorized, "Invalid username or password")

	// ErrInvalidPassword indicates the password confirming an account change is wrong.
	ErrInvalidPassword = errors.Public(errors.ErrUnauthorized, "Invalid password")

	// ErrSameUsername indicates a username change to the current name.
	ErrSameUsername = errors.Public(errors.ErrInvalidInput, "New username must be different")

	// ErrPasswordMismatch indicates new password and confirmation differ.
	ErrPasswordMismatch = errors.Public(errors.ErrInvalidInput, "Passwords do not match")

	// ErrPasswordTooShort indicates a new password under MinPasswordLength.
	ErrPasswordTooShort = errors.Public(errors.ErrInvalidInput, "Password must be at least 6 characters")

	// ErrInvalidUsername indicates a username that cannot be used to log in.
	ErrInvalidUsername = errors.Public(errors.ErrInvalidInput, "Username must be 3 to 64 characters, must not contain ':' and must not be reserved")
)
