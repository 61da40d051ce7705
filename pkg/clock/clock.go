// Package clock provides cancellable scheduled tasks.
//
// Components that arm timers (slide rotation, notification dismissal) take a
// Clock instead of calling time.AfterFunc directly so tests can drive time by
// hand with clocktest.Clock.
package clock

import "time"

// Timer is a pending task that can be cancelled.
type Timer interface {
	// Stop cancels the task. It reports whether the call stopped the task
	// before it ran; stopping an already fired or stopped task is a no-op.
	Stop() bool
}

// Clock schedules tasks.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f once, on its own goroutine, after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the wall clock.
type Real struct{}

// New returns the wall clock.
func New() Clock { return Real{} }

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
