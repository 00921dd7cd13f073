// Package clickguard debounces clicks on user interface controls. The
// first click through a guarded handler is forwarded to the wrapped
// handler and arms a guard; further clicks are swallowed until the
// guard's watch period elapses. Sharing one guard between several
// controls debounces them as a group: one accepted click silences every
// member.
//
// Guards synchronize internally, so the package behaves correctly both
// on a single UI event loop and when clicks or timer expiries arrive
// from other goroutines.
package clickguard
