package core

import "time"

// Clock is the time source injected into every service that reads "now".
// Derived state (assignment status, pending counts) must be computed against
// an injectable clock so it stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now().UTC() }
