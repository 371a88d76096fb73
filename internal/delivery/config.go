// Package delivery models the delivery schedule configured in the dashboard and the
// order tags derived from a customer's choice.
package delivery

import (
	"fmt"
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/deliverydash/internal/validation"
)

// Type is the kind of fulfilment a customer picked.
type Type string

const (
	TypeDelivery   Type = "delivery"
	TypeCollection Type = "collection"
	TypeExpress    Type = "express"
)

// Defaults applied by Normalize.
const (
	DefaultMaxDaysAhead = 60
	DefaultTimezone     = "UTC"
)

// TimeSlot is a bookable window within a day, times are "HH:MM".
type TimeSlot struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name,omitempty"`
	Start string  `json:"startTime"`
	End   string  `json:"endTime"`
	Type  Type    `json:"type,omitempty"`
	Fee   float64 `json:"fee,omitempty"`
}

// DateRange blocks every date from Start to End inclusive ("YYYY-MM-DD").
type DateRange struct {
	Start  string `json:"startDate"`
	End    string `json:"endDate"`
	Reason string `json:"reason,omitempty"`
}

// CollectionLocation is a pickup point.
type CollectionLocation struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Settings holds the booking window rules.
type Settings struct {
	LeadDays         int    `json:"leadDays"`
	MaxDaysAhead     int    `json:"maxDaysAhead"`
	Timezone         string `json:"timezone"`
	DisabledWeekdays []int  `json:"disabledWeekdays,omitempty"`
}

// Config is the full delivery configuration of a store.
type Config struct {
	TimeSlots           []TimeSlot           `json:"timeSlots"`
	BlockedDates        []string             `json:"blockedDates"`
	BlockedDateRanges   []DateRange          `json:"blockedDateRanges"`
	ExpressFee          float64              `json:"expressFee"`
	CollectionLocations []CollectionLocation `json:"collectionLocations"`
	Settings            Settings             `json:"settings"`
}

// DefaultConfig returns the configuration served before anything is saved.
func DefaultConfig() Config {
	return Config{
		TimeSlots:           []TimeSlot{},
		BlockedDates:        []string{},
		BlockedDateRanges:   []DateRange{},
		CollectionLocations: []CollectionLocation{},
		Settings: Settings{
			MaxDaysAhead: DefaultMaxDaysAhead,
			Timezone:     DefaultTimezone,
		},
	}
}

// Normalize replaces nil slices with empty ones and fills unset settings.
func (c *Config) Normalize() {
	if c.TimeSlots == nil {
		c.TimeSlots = []TimeSlot{}
	}
	if c.BlockedDates == nil {
		c.BlockedDates = []string{}
	}
	if c.BlockedDateRanges == nil {
		c.BlockedDateRanges = []DateRange{}
	}
	if c.CollectionLocations == nil {
		c.CollectionLocations = []CollectionLocation{}
	}
	if c.Settings.MaxDaysAhead == 0 {
		c.Settings.MaxDaysAhead = DefaultMaxDaysAhead
	}
	if c.Settings.Timezone == "" {
		c.Settings.Timezone = DefaultTimezone
	}
}

// Location returns the configured timezone, UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	if c.Settings.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Settings.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TimeSlots, validation.Each(validation.By(validateTimeSlot))),
		validation.Field(&c.BlockedDates, validation.Each(customValidation.ISODate)),
		validation.Field(&c.BlockedDateRanges, validation.Each(validation.By(validateDateRange))),
		validation.Field(&c.ExpressFee, validation.Min(0.0)),
		validation.Field(&c.CollectionLocations, validation.Each(validation.By(validateLocation))),
		validation.Field(&c.Settings),
	)
}

// Validate checks the booking window rules.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.LeadDays, validation.Min(0), validation.Max(365)),
		validation.Field(&s.MaxDaysAhead, validation.Min(0), validation.Max(365)),
		validation.Field(&s.Timezone, validation.By(validateTimezone)),
		validation.Field(&s.DisabledWeekdays, validation.Each(validation.Min(0), validation.Max(6))),
	)
}

func validateTimeSlot(value any) error {
	slot, ok := value.(TimeSlot)
	if !ok {
		return validation.NewError("validation_time_slot_type", "must be a time slot")
	}

	err := validation.ValidateStruct(&slot,
		validation.Field(&slot.Start, validation.Required, customValidation.ClockTime),
		validation.Field(&slot.End, validation.Required, customValidation.ClockTime),
		validation.Field(&slot.Type, validation.In(TypeDelivery, TypeCollection, TypeExpress)),
		validation.Field(&slot.Fee, validation.Min(0.0)),
	)
	if err != nil {
		return err
	}

	// "HH:MM" compares correctly as a string.
	if slot.Start >= slot.End {
		return validation.NewError("validation_time_slot_order", "startTime must be before endTime")
	}
	return nil
}

func validateDateRange(value any) error {
	r, ok := value.(DateRange)
	if !ok {
		return validation.NewError("validation_date_range_type", "must be a date range")
	}

	err := validation.ValidateStruct(&r,
		validation.Field(&r.Start, validation.Required, customValidation.ISODate),
		validation.Field(&r.End, validation.Required, customValidation.ISODate),
	)
	if err != nil {
		return err
	}

	if r.Start > r.End {
		return validation.NewError("validation_date_range_order", "startDate must not be after endDate")
	}
	return nil
}

func validateLocation(value any) error {
	loc, ok := value.(CollectionLocation)
	if !ok {
		return validation.NewError("validation_location_type", "must be a collection location")
	}
	return validation.ValidateStruct(&loc,
		validation.Field(&loc.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 200)),
	)
}

func validateTimezone(value any) error {
	tz, _ := value.(string)
	if tz == "" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return validation.NewError("validation_timezone", fmt.Sprintf("unknown timezone %q", tz))
	}
	return nil
}
