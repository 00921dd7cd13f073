package clickguard

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/atthapon-k/naofumi-clickguard/clock"
)

// DefaultPeriod is the watch period used when a guard is created with a
// non-positive period.
const DefaultPeriod = time.Second

// State identifies whether a guard currently suppresses clicks.
type State int

const (
	// Resting means the next click is processed normally.
	Resting State = iota
	// Watching means incoming clicks are ignored until the watch
	// period elapses.
	Watching
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Watching {
		return "watching"
	}
	return "resting"
}

// Guard is a watch/rest state machine deciding whether clicks should
// currently be suppressed. Arming it starts a watch window of the
// configured period; when the window ends the guard rests again.
//
// A single guard may be shared by several controls. The first accepted
// click among them arms the guard, and clicks on any member are then
// ignored until the period elapses.
//
// All methods are safe for concurrent use.
type Guard struct {
	id     string
	period time.Duration
	clk    clock.Clock

	watching atomic.Bool
	notify   *notifier

	// dispatchMu serializes guarded click dispatch so the
	// check-forward-arm sequence is atomic per guard.
	dispatchMu sync.Mutex

	mu       sync.Mutex
	timer    clock.Timer
	deadline time.Time
	gen      uint64
}

// NewGuard creates a guard with the given watch period, scheduled on
// the system clock. A non-positive period selects DefaultPeriod. The
// period is fixed for the guard's lifetime.
func NewGuard(period time.Duration) *Guard {
	return NewGuardWithClock(period, clock.System)
}

// NewGuardWithClock creates a guard that schedules its rest transition
// on the given clock. A nil clock falls back to the system clock.
func NewGuardWithClock(period time.Duration, clk clock.Clock) *Guard {
	if period <= 0 {
		period = DefaultPeriod
	}
	if clk == nil {
		clk = clock.System
	}
	return &Guard{
		id:     uuid.NewString(),
		period: period,
		clk:    clk,
		notify: newNotifier(),
	}
}

// ID returns the guard's unique identifier.
func (g *Guard) ID() string {
	return g.id
}

// Period returns the configured watch period.
func (g *Guard) Period() time.Duration {
	return g.period
}

// IsWatching reports whether the guard is currently suppressing clicks.
func (g *Guard) IsWatching() bool {
	return g.watching.Load()
}

// State returns Watching or Resting.
func (g *Guard) State() State {
	if g.IsWatching() {
		return Watching
	}
	return Resting
}

// Watch arms the guard: it transitions to Watching and schedules the
// return to Resting once the watch period elapses. Arming a guard that
// is already watching restarts the window at the full period; it never
// shortens an in-progress window.
func (g *Guard) Watch() {
	g.mu.Lock()
	if g.timer != nil {
		g.timer.Stop()
	}
	g.gen++
	gen := g.gen
	g.deadline = g.clk.Now().Add(g.period)
	wasWatching := g.watching.Swap(true)
	g.timer = g.clk.AfterFunc(g.period, func() { g.expire(gen) })
	g.mu.Unlock()

	if !wasWatching {
		g.notify.changed(Watching)
	}
}

// Rest immediately returns the guard to Resting, canceling the pending
// rest transition. Resting an already resting guard is a no-op.
func (g *Guard) Rest() {
	g.mu.Lock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.gen++
	g.deadline = time.Time{}
	wasWatching := g.watching.Swap(false)
	g.mu.Unlock()

	if wasWatching {
		g.notify.changed(Resting)
	}
}

// Remaining returns how much longer the guard will keep watching, or
// zero when it is resting.
func (g *Guard) Remaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer == nil {
		return 0
	}
	if left := g.deadline.Sub(g.clk.Now()); left > 0 {
		return left
	}
	return 0
}

// expire is the scheduled rest transition. A guard re-armed or rested
// after this expiry was scheduled carries a newer generation, making
// the stale expiry a no-op even if its timer already fired.
func (g *Guard) expire(gen uint64) {
	g.mu.Lock()
	if gen != g.gen {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	g.deadline = time.Time{}
	g.watching.Store(false)
	g.mu.Unlock()

	g.notify.changed(Resting)
}
