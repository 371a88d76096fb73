// Package domain defines the Shopify store credentials kept per dashboard user.
package domain

import (
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/deliverydash/internal/validation"
)

// DefaultAPIVersion is used when no API version is supplied.
const DefaultAPIVersion = "2024-10"

// MaskPrefix starts every masked secret. A submitted value carrying it means
// "keep what is stored".
const MaskPrefix = "****"

// Settings are the credentials of one Shopify store.
type Settings struct {
	ShopDomain  string    `json:"shopDomain"`
	AccessToken string    `json:"accessToken"`
	APIVersion  string    `json:"apiVersion"`
	AppSecret   string    `json:"appSecret,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks a normalised Settings value.
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.ShopDomain, validation.Required, customValidation.ShopDomain),
		validation.Field(&s.AccessToken, validation.Required, customValidation.NotBlank),
		validation.Field(&s.APIVersion, validation.Required, customValidation.APIVersion),
	)
}

// Masked returns a copy safe to send to clients.
func (s *Settings) Masked() *Settings {
	masked := *s
	masked.AccessToken = Mask(s.AccessToken)
	masked.AppSecret = Mask(s.AppSecret)
	return &masked
}

// SaveSettingsInput is a settings update. Secrets that are empty or still masked keep
// their stored value.
type SaveSettingsInput struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
	AppSecret   string
}

// ShopInfo is the subset of shop.json reported by the connection test.
type ShopInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Domain          string `json:"domain"`
	MyshopifyDomain string `json:"myshopify_domain"`
	Currency        string `json:"currency"`
	PlanName        string `json:"plan_name"`
	IANATimezone    string `json:"iana_timezone"`
}

// NormalizeDomain lowercases d and strips the scheme and any path.
func NormalizeDomain(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.IndexByte(d, '/'); i >= 0 {
		d = d[:i]
	}
	return d
}

// Mask hides all but the last four characters of secret.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	runes := []rune(secret)
	if len(runes) <= 4 {
		return MaskPrefix
	}
	return MaskPrefix + string(runes[len(runes)-4:])
}

// IsMasked reports whether v is a masked placeholder rather than a new secret.
func IsMasked(v string) bool {
	return strings.HasPrefix(v, MaskPrefix)
}
