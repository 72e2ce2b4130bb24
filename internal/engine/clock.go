package engine

import "time"

// Timer represents a pending timer that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock provides time operations. An interface so tests can drive the
// debounce window with a manual clock instead of sleeping.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// SystemClock is the default Clock backed by the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
