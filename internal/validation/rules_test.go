package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/deliverydash/internal/errors"
)

func TestStringRules(t *testing.T) {
	tests := []struct {
		name      string
		rule      validation.Rule
		value     string
		shouldErr bool
	}{
		{name: "email ok", rule: Email, value: "owner@shop.com"},
		{name: "email bad", rule: Email, value: "owner@", shouldErr: true},
		{name: "no whitespace ok", rule: NoWhitespace, value: "admin"},
		{name: "no whitespace bad", rule: NoWhitespace, value: " admin", shouldErr: true},
		{name: "not blank ok", rule: NotBlank, value: "x"},
		{name: "not blank bad", rule: NotBlank, value: "   ", shouldErr: true},
		{name: "no colon ok", rule: NoColon, value: "shop-owner"},
		{name: "no colon bad", rule: NoColon, value: "a:b", shouldErr: true},
		{name: "clock time ok", rule: ClockTime, value: "09:30"},
		{name: "clock time single digit", rule: ClockTime, value: "9:30", shouldErr: true},
		{name: "clock time out of range", rule: ClockTime, value: "25:00", shouldErr: true},
		{name: "iso date ok", rule: ISODate, value: "2024-12-20"},
		{name: "iso date bad", rule: ISODate, value: "20/12/2024", shouldErr: true},
		{name: "shop domain ok", rule: ShopDomain, value: "my-store.myshopify.com"},
		{name: "shop domain bad", rule: ShopDomain, value: "my-store.com", shouldErr: true},
		{name: "api version ok", rule: APIVersion, value: "2024-10"},
		{name: "api version unstable", rule: APIVersion, value: "unstable"},
		{name: "api version bad month", rule: APIVersion, value: "2024-11", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, tt.rule)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input with message", func(t *testing.T) {
		err := WrapValidationError(validation.Errors{"username": validation.NewError("x", "is required")})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Equal(t, "username: is required.", apperrors.Message(err))
	})
}
