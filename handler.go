package clickguard

// Option configures a GuardedHandler at construction.
type Option func(*GuardedHandler)

// WithOnClicked sets the decision callback that runs after a forwarded
// click. Returning true arms the guard; returning false leaves it
// resting so the next click is processed immediately. Without the
// option every forwarded click arms the guard.
func WithOnClicked(fn func(Control) bool) Option {
	return func(h *GuardedHandler) {
		h.onClicked = fn
	}
}

// WithOnIgnored sets the callback that runs when a click is suppressed.
// Without the option suppressed clicks are dropped silently.
func WithOnIgnored(fn func(Control)) Option {
	return func(h *GuardedHandler) {
		h.onIgnored = fn
	}
}

// GuardedHandler decorates a click handler with a guard. On every click
// it consults the guard first: while the guard watches, the click is
// swallowed; otherwise the inner handler runs and the decision callback
// chooses whether to arm the guard.
//
// A GuardedHandler may have no inner handler at all, in which case its
// behavior lives entirely in the callbacks.
type GuardedHandler struct {
	guard     *Guard
	inner     Handler
	onClicked func(Control) bool
	onIgnored func(Control)
}

// NewGuardedHandler creates a guarded handler without an inner handler,
// bound to g. Behavior is supplied through WithOnClicked and
// WithOnIgnored.
func NewGuardedHandler(g *Guard, opts ...Option) (*GuardedHandler, error) {
	if g == nil {
		return nil, ErrNilGuard
	}
	h := &GuardedHandler{guard: g}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func newGuardedHandler(g *Guard, inner Handler, opts ...Option) (*GuardedHandler, error) {
	if g == nil {
		return nil, ErrNilGuard
	}
	if inner == nil {
		return nil, ErrNilHandler
	}
	if _, ok := inner.(*GuardedHandler); ok {
		return nil, ErrAlreadyGuarded
	}
	h := &GuardedHandler{guard: g, inner: inner}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Guard returns the guard this handler consults.
func (h *GuardedHandler) Guard() *Guard {
	return h.guard
}

// Inner returns the wrapped handler, or nil for a guarded handler
// created without one.
func (h *GuardedHandler) Inner() Handler {
	return h.inner
}

// HandleClick implements Handler. The check-forward-arm sequence runs
// under the guard's dispatch lock, so simultaneous clicks on controls
// sharing the guard resolve to exactly one forwarded click. The inner
// handler and the callbacks therefore run while that lock is held: they
// may use the guard freely, but must not synchronously dispatch another
// click through a handler sharing the same guard.
func (h *GuardedHandler) HandleClick(c Control) {
	h.guard.dispatchMu.Lock()
	defer h.guard.dispatchMu.Unlock()

	if h.guard.IsWatching() {
		if h.onIgnored != nil {
			h.onIgnored(c)
		}
		return
	}

	if h.inner != nil {
		h.inner.HandleClick(c)
	}
	if h.onClicked == nil || h.onClicked(c) {
		h.guard.Watch()
	}
}
