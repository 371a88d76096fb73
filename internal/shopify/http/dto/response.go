package dto

import (
	"time"

	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
)

// SettingsResponse is the masked settings view.
type SettingsResponse struct {
	ShopDomain  string `json:"shopDomain"`
	AccessToken string `json:"accessToken"`
	APIVersion  string `json:"apiVersion"`
	AppSecret   string `json:"appSecret"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// MapSettingsToResponse converts masked settings to the response DTO.
func MapSettingsToResponse(s *shopifyDomain.Settings) SettingsResponse {
	resp := SettingsResponse{
		ShopDomain:  s.ShopDomain,
		AccessToken: s.AccessToken,
		APIVersion:  s.APIVersion,
		AppSecret:   s.AppSecret,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// ShopResponse summarises shop.json for the connection test.
type ShopResponse struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
	PlanName string `json:"planName"`
	Timezone string `json:"timezone,omitempty"`
}

// MapShopToResponse converts ShopInfo to the response DTO.
func MapShopToResponse(s *shopifyDomain.ShopInfo) ShopResponse {
	domain := s.MyshopifyDomain
	if domain == "" {
		domain = s.Domain
	}
	return ShopResponse{
		Name:     s.Name,
		Domain:   domain,
		Email:    s.Email,
		Currency: s.Currency,
		PlanName: s.PlanName,
		Timezone: s.IANATimezone,
	}
}
