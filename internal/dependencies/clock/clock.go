package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock in server-local time
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current local time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a falls on the same calendar day as b, in b's location
func SameDay(a, b time.Time) bool {
	return StartOfDay(a.In(b.Location())).Equal(StartOfDay(b))
}

// IsPreviousDay reports whether a falls on the calendar day before b, in b's location
func IsPreviousDay(a, b time.Time) bool {
	return SameDay(a, StartOfDay(b).AddDate(0, 0, -1))
}

// WholeDaysBetween returns the number of complete 24h periods from a to b
func WholeDaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
