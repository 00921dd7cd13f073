package clickguard

// Handler processes a click delivered to a control.
type Handler interface {
	HandleClick(Control)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(Control)

// HandleClick implements Handler.
func (fn HandlerFunc) HandleClick(c Control) {
	fn(c)
}

// Control is the surface a clickable widget exposes to this package:
// reading the registered click handler and replacing it. Toolkit
// wrappers implement it for their widget types, and any event source
// that routes events through a swappable handler can implement it too.
type Control interface {
	// OnClick returns the currently registered click handler, or nil
	// when none is registered.
	OnClick() Handler
	// SetOnClick replaces the registered click handler.
	SetOnClick(Handler)
}
