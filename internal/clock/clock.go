// Package clock provides an injectable time source so components that do
// expiry math can be tested without real delays.
package clock

import "time"

// Clock supplies the current time. All expiry comparisons in the application
// go through a single Clock instance so that "now" is consistent.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system wall clock in UTC.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// New returns the production clock.
func New() Clock {
	return RealClock{}
}
