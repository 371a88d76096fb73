package domain

import (
	apperrors "github.com/allisson/deliverydash/internal/errors"
)

var (
	// ErrSettingsNotFound indicates the user has not stored Shopify settings yet.
	ErrSettingsNotFound = apperrors.Public(apperrors.ErrNotFound, "Shopify settings not configured")

	// ErrConnectionFailed indicates the Shopify Admin API call did not succeed.
	ErrConnectionFailed = apperrors.Public(apperrors.ErrUpstream, "Failed to connect to Shopify")
)
