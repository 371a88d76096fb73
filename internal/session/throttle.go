package session

import (
	"time"

	"golang.org/x/time/rate"
)

// ActivityInterval is the minimum spacing of activity-driven session refreshes.
const ActivityInterval = time.Minute

// Throttle admits at most one event per interval.
type Throttle struct {
	limiter *rate.Limiter
	now     func() time.Time
}

// NewThrottle creates a Throttle using the wall clock.
func NewThrottle(interval time.Duration) *Throttle {
	return NewThrottleWithClock(interval, time.Now)
}

// NewThrottleWithClock creates a Throttle reading time from now.
func NewThrottleWithClock(interval time.Duration, now func() time.Time) *Throttle {
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		now:     now,
	}
}

// Allow reports whether an event may happen now and consumes the slot if so.
func (t *Throttle) Allow() bool {
	return t.limiter.AllowN(t.now(), 1)
}
