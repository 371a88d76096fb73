// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
	customValidation "github.com/allisson/deliverydash/internal/validation"
)

// SaveSettingsRequest contains the Shopify credentials submitted by the dashboard.
// Domain format is checked after normalisation by the use case.
type SaveSettingsRequest struct {
	ShopDomain  string `json:"shopDomain"`
	AccessToken string `json:"accessToken"`
	APIVersion  string `json:"apiVersion"`
	AppSecret   string `json:"appSecret"`
}

// Validate checks if the save settings request is valid.
func (r *SaveSettingsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ShopDomain, validation.Required, customValidation.NotBlank),
		validation.Field(&r.APIVersion, customValidation.APIVersion),
	)
}

// ToSaveSettingsInput converts the request to the use case input.
func (r *SaveSettingsRequest) ToSaveSettingsInput() *shopifyDomain.SaveSettingsInput {
	return &shopifyDomain.SaveSettingsInput{
		ShopDomain:  r.ShopDomain,
		AccessToken: r.AccessToken,
		APIVersion:  r.APIVersion,
		AppSecret:   r.AppSecret,
	}
}
