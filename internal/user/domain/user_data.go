// Package domain defines the per-user delivery data kept by the dashboard.
package domain

import (
	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	"github.com/allisson/deliverydash/internal/delivery"
)

// GlobalUserID owns the configuration written before data was split per user.
// Login rejects every username that maps to it.
const GlobalUserID = authDomain.ReservedUserID

// FeedDays is how many available dates the widget feed lists.
const FeedDays = 14

// MigrationResult reports the outcome of copying the global configuration.
type MigrationResult struct {
	Migrated bool
	Reason   string
}

// Migration reasons.
const (
	ReasonMigrated        = "Global configuration copied"
	ReasonAlreadyMigrated = "User data already exists"
	ReasonNothingToCopy   = "No global configuration to migrate"
)

// WidgetFeed is served to the storefront widget.
type WidgetFeed struct {
	Config         delivery.Config
	AvailableDates []string
	SampleTags     []string
}
