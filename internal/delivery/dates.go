package delivery

import (
	"slices"
	"time"
)

// IsBlocked reports whether the calendar date of day is a blocked date, falls inside a
// blocked range or lands on a disabled weekday.
func (c *Config) IsBlocked(day time.Time) bool {
	date := day.Format(time.DateOnly)

	if slices.Contains(c.BlockedDates, date) {
		return true
	}
	for _, r := range c.BlockedDateRanges {
		if r.Start <= date && date <= r.End {
			return true
		}
	}
	return slices.Contains(c.Settings.DisabledWeekdays, int(day.Weekday()))
}

// AvailableDates returns up to n bookable dates starting LeadDays after from, no later
// than MaxDaysAhead after from (0 means unbounded within a year), in the configured
// timezone. Dates are midnight in that timezone.
func AvailableDates(cfg Config, from time.Time, n int) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}

	loc := cfg.Location()
	local := from.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	horizon := cfg.Settings.MaxDaysAhead
	if horizon <= 0 {
		horizon = 365
	}

	dates := make([]time.Time, 0, n)
	for offset := max(cfg.Settings.LeadDays, 0); offset <= horizon && len(dates) < n; offset++ {
		day := today.AddDate(0, 0, offset)
		if !cfg.IsBlocked(day) {
			dates = append(dates, day)
		}
	}
	return dates
}
