package zerolog

import (
	"github.com/jeblackburn/contexttimer"
	"github.com/rs/zerolog"
)

// Reporter writes timing reports as zerolog debug events.
type Reporter struct {
	logger zerolog.Logger
}

// New returns a Reporter writing debug events to logger.
func New(logger zerolog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Debugf emits a debug event carrying the rendered message.
func (r *Reporter) Debugf(format string, args ...any) {
	ev := r.logger.Debug()
	if len(args) == 2 {
		ev = ev.Interface("func", args[0]).Interface("elapsed", args[1])
	}
	ev.Msgf(format, args...)
}

var _ contexttimer.Reporter = (*Reporter)(nil)
