package domain

import "errors"

// Protocol-level error kinds. All are defensive: a well-behaved client
// never triggers them, and when one fires the event is dropped and
// logged while the connection stays usable.
var (
	ErrNotRegistered    = errors.New("connection not registered")
	ErrAlreadyInSession = errors.New("connection already in a session")
	ErrNoActiveSession  = errors.New("no active session")
)
