package clickguard

import "sync"

// notifier fans guard state transitions out to registered observers.
// Callbacks run synchronously on the goroutine that caused the
// transition, outside the guard's locks.
type notifier struct {
	mu        sync.Mutex
	observers map[string]func(State)
}

func newNotifier() *notifier {
	return &notifier{observers: make(map[string]func(State))}
}

func (n *notifier) add(key string, fn func(State)) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.observers[key] = fn
}

func (n *notifier) remove(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.observers, key)
}

func (n *notifier) changed(s State) {
	n.mu.Lock()
	if len(n.observers) == 0 {
		n.mu.Unlock()
		return
	}
	fns := make([]func(State), 0, len(n.observers))
	for _, fn := range n.observers {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// AddObserver registers fn to run on every state transition, replacing
// any observer previously stored under key. Observers fire after the
// transition is visible; an expiry-driven transition runs them on the
// timer goroutine, so UI programs should forward to their event loop.
// Observers added during a notification do not receive that
// notification.
func (g *Guard) AddObserver(key string, fn func(State)) {
	g.notify.add(key, fn)
}

// RemoveObserver drops the observer stored under key.
func (g *Guard) RemoveObserver(key string) {
	g.notify.remove(key)
}
