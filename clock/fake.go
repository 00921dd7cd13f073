package clock

import (
	"sync"
	"time"
)

// Fake is a Clock for tests. Time stands still until Advance is called,
// and timers only fire inside Advance, so tests control exactly when
// scheduled work runs.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewFake creates a fake clock starting at the Unix epoch.
func NewFake() *Fake {
	return &Fake{now: time.Unix(0, 0).UTC()}
}

// Now returns the current fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

// AfterFunc schedules fn to run once the fake time reaches the deadline
// now+d. A non-positive duration makes the timer due immediately; it
// still fires only inside the next Advance call.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTimer{
		clk:      f,
		deadline: f.now.Add(d),
		fn:       fn,
	}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves the fake time forward by d, running every timer that
// becomes due, synchronously and in deadline order, before returning.
// Timers with equal deadlines fire in the order they were scheduled. A
// timer function may schedule further timers; those also run if their
// deadline falls within the advanced span.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	for {
		t := f.nextDue(target)
		if t == nil {
			break
		}
		if t.deadline.After(f.now) {
			f.now = t.deadline
		}
		t.fired = true

		// Run the timer without holding the lock so it can schedule
		// or stop other timers.
		f.mu.Unlock()
		t.fn()
		f.mu.Lock()
	}
	f.now = target

	pending := f.timers[:0]
	for _, t := range f.timers {
		if !t.fired && !t.stopped {
			pending = append(pending, t)
		}
	}
	f.timers = pending
	f.mu.Unlock()
}

// nextDue returns the earliest pending timer due at or before target.
// Callers must hold mu.
func (f *Fake) nextDue(target time.Time) *fakeTimer {
	var due *fakeTimer
	for _, t := range f.timers {
		if t.fired || t.stopped || t.deadline.After(target) {
			continue
		}
		if due == nil || t.deadline.Before(due.deadline) {
			due = t
		}
	}
	return due
}

type fakeTimer struct {
	clk      *Fake
	deadline time.Time
	fn       func()
	fired    bool
	stopped  bool
}

// Stop implements Timer.
func (t *fakeTimer) Stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
