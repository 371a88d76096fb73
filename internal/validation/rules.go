// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/deliverydash/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// shopDomainRegex matches "<store>.myshopify.com"
	shopDomainRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]*\.myshopify\.com$`)

	// apiVersionRegex matches Shopify API versions such as "2024-10" or "unstable"
	apiVersionRegex = regexp.MustCompile(`^(\d{4}-(01|04|07|10)|unstable)$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput, keeping the
// field messages visible to the client.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Public(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoColon rejects values containing ':', the session token field separator.
var NoColon = validation.NewStringRuleWithError(
	func(s string) bool {
		return !strings.Contains(s, ":")
	},
	validation.NewError("validation_no_colon", "must not contain ':'"),
)

// ClockTime validates a 24h "HH:MM" time of day.
var ClockTime = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse("15:04", s)
		return err == nil && len(s) == 5
	},
	validation.NewError("validation_clock_time", "must be a time in HH:MM format"),
)

// ISODate validates a "YYYY-MM-DD" calendar date.
var ISODate = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse(time.DateOnly, s)
		return err == nil
	},
	validation.NewError("validation_iso_date", "must be a date in YYYY-MM-DD format"),
)

// ShopDomain validates a normalised "<store>.myshopify.com" domain.
var ShopDomain = validation.NewStringRuleWithError(
	func(s string) bool {
		return shopDomainRegex.MatchString(s)
	},
	validation.NewError("validation_shop_domain", "must be a valid .myshopify.com domain"),
)

// APIVersion validates a Shopify Admin API version string.
var APIVersion = validation.NewStringRuleWithError(
	func(s string) bool {
		return apiVersionRegex.MatchString(s)
	},
	validation.NewError("validation_api_version", "must be a Shopify API version such as 2024-10"),
)
