// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	customValidation "github.com/allisson/deliverydash/internal/validation"
)

// LoginRequest contains the dashboard credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid. The minimum username length is
// applied by the use case so that every rejected short name answers the same way.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, authDomain.MaxUsernameLength),
		),
		validation.Field(&r.Password, validation.Required),
	)
}

// PasswordRequest carries a password confirming a sensitive operation.
type PasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the password request is valid.
func (r *PasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}

// ChangeEmailRequest contains the parameters for changing the account email.
type ChangeEmailRequest struct {
	Password string `json:"password"`
	NewEmail string `json:"newEmail"`
}

// Validate checks if the change email request is valid.
func (r *ChangeEmailRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.NewEmail,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.Email,
			customValidation.NoColon,
			validation.Length(3, 254),
		),
	)
}

// ChangePasswordRequest contains the parameters for changing the password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword,
			validation.Required,
			validation.Length(authDomain.MinPasswordLength, 0),
		),
		validation.Field(&r.ConfirmPassword, validation.Required),
	)
}

// ChangeUsernameRequest contains the parameters for changing the username.
type ChangeUsernameRequest struct {
	Password    string `json:"password"`
	NewUsername string `json:"newUsername"`
}

// Validate checks if the change username request is valid.
func (r *ChangeUsernameRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.NewUsername,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			customValidation.NoColon,
			validation.Length(1, authDomain.MaxUsernameLength),
		),
	)
}
