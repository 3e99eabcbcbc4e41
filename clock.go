package contexttimer

import "time"

// Clock provides the current time; useful for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads time.Now, which carries a monotonic reading.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

var _ Clock = RealClock{}
