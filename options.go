package contexttimer

import (
	"io"
	"os"
)

// Common scaling factors for seconds-based elapsed values.
const (
	Seconds      = 1.0
	Milliseconds = 1e3
	Microseconds = 1e6
)

type config struct {
	clock    Clock
	factor   float64
	reporter Reporter
	out      io.Writer
	name     string
}

func defaultConfig() config {
	return config{clock: RealClock{}, factor: Seconds, out: os.Stdout}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Option configures a Timer or a Decorator. Timers only look at the clock and
// the factor.
type Option func(*config)

// WithClock replaces the time source. A nil clock keeps RealClock.
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithFactor sets the multiplier applied to elapsed seconds.
func WithFactor(factor float64) Option {
	return func(c *config) { c.factor = factor }
}

// WithReporter routes decorator reports through r instead of the output writer.
func WithReporter(r Reporter) Option {
	return func(c *config) { c.reporter = r }
}

// WithOutput sets the writer used when no Reporter is configured.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// WithName overrides the function name used in reports.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}
