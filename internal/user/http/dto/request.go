// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/allisson/deliverydash/internal/delivery"
)

// SaveDataRequest is a full delivery configuration.
type SaveDataRequest struct {
	delivery.Config
}

// Validate checks the configuration after filling defaults.
func (r *SaveDataRequest) Validate() error {
	r.Normalize()
	return r.Config.Validate()
}

// SyncRequest optionally carries the configuration to push. Without it the stored
// configuration is sent.
type SyncRequest struct {
	Data *delivery.Config `json:"data"`
}

// Validate checks the optional configuration.
func (r *SyncRequest) Validate() error {
	if r.Data == nil {
		return nil
	}
	r.Data.Normalize()
	return r.Data.Validate()
}
