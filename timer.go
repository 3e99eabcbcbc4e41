// Package contexttimer measures the wall-clock time of a block of code or of
// every call to a function.
//
// A Timer is started and stopped around a scope. While open, Elapsed reports
// the time since Start and advances on every call; once stopped it reports
// the fixed duration of the whole scope.
package contexttimer

import (
	"fmt"
	"time"
)

// Timer records the wall-clock time between Start and Stop.
//
// A Timer must not be started or stopped from multiple goroutines at once.
type Timer struct {
	clock   Clock
	factor  float64
	start   time.Time
	end     time.Time
	started bool
	stopped bool
}

// New returns an unstarted Timer. Only WithClock and WithFactor apply.
func New(opts ...Option) *Timer {
	c := newConfig(opts)
	return newTimer(c)
}

func newTimer(c config) *Timer {
	return &Timer{clock: c.clock, factor: c.factor}
}

// Now returns the current reading of the timer's clock.
func (t *Timer) Now() time.Time { return t.clock.Now() }

// Start records the start time and reopens the timer if it was stopped.
// Starting twice overwrites the previous start.
func (t *Timer) Start() *Timer {
	t.start = t.Now()
	t.end = time.Time{}
	t.started = true
	t.stopped = false
	return t
}

// Stop records the end time. Elapsed is frozen afterwards. Stop on a timer
// that was never started does nothing.
func (t *Timer) Stop() {
	if !t.started {
		return
	}
	t.end = t.Now()
	t.stopped = true
}

// Stopped reports whether Stop has run since the last Start.
func (t *Timer) Stopped() bool { return t.stopped }

// Do starts the timer, runs fn and stops the timer on every exit path,
// including a panic in fn.
func (t *Timer) Do(fn func(*Timer)) {
	t.Start()
	defer t.Stop()
	fn(t)
}

// Measure runs fn inside a new timer's scope and returns the stopped timer.
func Measure(fn func(*Timer), opts ...Option) *Timer {
	t := New(opts...)
	t.Do(fn)
	return t
}

// Duration returns the unscaled elapsed time: zero before Start, live while
// the timer is open, fixed once it is stopped.
func (t *Timer) Duration() time.Duration {
	if !t.started {
		return 0
	}
	if !t.stopped {
		return t.Now().Sub(t.start)
	}
	return t.end.Sub(t.start)
}

// Elapsed returns the elapsed seconds multiplied by the timer's factor.
func (t *Timer) Elapsed() float64 {
	return t.Duration().Seconds() * t.factor
}

// String formats Elapsed with three decimals.
func (t *Timer) String() string {
	return fmt.Sprintf("%.3f", t.Elapsed())
}
