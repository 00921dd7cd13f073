package clickguard

import "errors"

var (
	ErrNilHandler     = errors.New("handler is nil")
	ErrNilControl     = errors.New("control is nil")
	ErrNilGuard       = errors.New("guard is nil")
	ErrAlreadyGuarded = errors.New("handler is already guarded")
	ErrNoHandler      = errors.New("control has no click handler")
	ErrNotGuarded     = errors.New("control is not guarded")
)
