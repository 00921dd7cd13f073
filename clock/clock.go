// Package clock abstracts timer scheduling so guard behavior can be
// driven deterministically in tests. Production code uses System; tests
// inject a Fake and advance it by hand.
package clock

import "time"

// Clock reports the current time and schedules deferred function calls.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc waits for the duration to elapse and then calls fn in
	// its own goroutine. It returns a Timer that can cancel the call.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the timer from firing. It returns true if the call
	// stopped the timer, false if the timer already fired or was
	// stopped.
	Stop() bool
}

// System is the default Clock, backed by the time package.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
