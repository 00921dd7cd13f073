package clickguard

import (
	"fmt"
	"log/slog"
	"time"
)

// Wrap decorates h with a fresh guard using the default watch period.
// The handler is required; wrapping an already guarded handler is
// rejected.
func Wrap(h Handler, opts ...Option) (*GuardedHandler, error) {
	return WrapWithGuard(NewGuard(DefaultPeriod), h, opts...)
}

// WrapWithPeriod decorates h with a fresh guard using the given watch
// period. A non-positive period selects DefaultPeriod.
func WrapWithPeriod(period time.Duration, h Handler, opts ...Option) (*GuardedHandler, error) {
	return WrapWithGuard(NewGuard(period), h, opts...)
}

// WrapWithGuard decorates h with an existing guard. Handlers bound to
// the same guard debounce as a group. It rejects a nil guard, a nil
// handler, and a handler that is already guarded.
func WrapWithGuard(g *Guard, h Handler, opts ...Option) (*GuardedHandler, error) {
	return newGuardedHandler(g, h, opts...)
}

// Attach replaces c's registered click handler with a guarded handler
// wrapping it, bound to g. The control must already have a handler;
// attaching to an already guarded control is rejected. Errors surface
// at this call, before any click is processed.
func (g *Guard) Attach(c Control, opts ...Option) error {
	if c == nil {
		return ErrNilControl
	}
	prev := c.OnClick()
	if prev == nil {
		return ErrNoHandler
	}
	gh, err := newGuardedHandler(g, prev, opts...)
	if err != nil {
		return err
	}
	c.SetOnClick(gh)

	slog.Debug("Guarded control", "guard", g.id, "period", g.period)
	return nil
}

// AttachAll attaches g to every control in cs, giving the whole set
// group-debounce semantics. Preconditions are checked for all controls
// before any handler is replaced, so a failure leaves every control
// untouched.
func (g *Guard) AttachAll(cs ...Control) error {
	for i, c := range cs {
		if c == nil {
			return fmt.Errorf("control %d: %w", i, ErrNilControl)
		}
		prev := c.OnClick()
		if prev == nil {
			return fmt.Errorf("control %d: %w", i, ErrNoHandler)
		}
		if _, ok := prev.(*GuardedHandler); ok {
			return fmt.Errorf("control %d: %w", i, ErrAlreadyGuarded)
		}
	}
	for i, c := range cs {
		if err := g.Attach(c); err != nil {
			return fmt.Errorf("control %d: %w", i, err)
		}
	}
	return nil
}

// GuardControls guards every control with one fresh guard using the
// default watch period, so a click on any of them suppresses the whole
// set.
func GuardControls(cs ...Control) (*Guard, error) {
	return GuardControlsWithPeriod(DefaultPeriod, cs...)
}

// GuardControlsWithPeriod is GuardControls with an explicit watch
// period. A non-positive period selects DefaultPeriod.
func GuardControlsWithPeriod(period time.Duration, cs ...Control) (*Guard, error) {
	g := NewGuard(period)
	if err := g.AttachAll(cs...); err != nil {
		return nil, err
	}
	return g, nil
}

// GuardOf returns the guard bound to c's current click handler.
func GuardOf(c Control) (*Guard, error) {
	if c == nil {
		return nil, ErrNilControl
	}
	gh, ok := c.OnClick().(*GuardedHandler)
	if !ok {
		return nil, ErrNotGuarded
	}
	return gh.guard, nil
}

// Unguard removes the guard from c, restoring the handler that was
// registered before the guard was attached.
func Unguard(c Control) error {
	if c == nil {
		return ErrNilControl
	}
	gh, ok := c.OnClick().(*GuardedHandler)
	if !ok {
		return ErrNotGuarded
	}
	c.SetOnClick(gh.inner)

	slog.Debug("Unguarded control", "guard", gh.guard.id)
	return nil
}
