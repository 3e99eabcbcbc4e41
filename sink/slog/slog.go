package slog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jeblackburn/contexttimer"
)

// Reporter logs timing reports at slog.LevelDebug. The function name and the
// elapsed value are attached as attributes next to the rendered message.
type Reporter struct {
	logger *slog.Logger
}

// New returns a Reporter writing to logger, or to slog.Default when nil.
func New(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Debugf logs the report at debug level with func and elapsed attributes.
func (r *Reporter) Debugf(format string, args ...any) {
	l := r.logger
	if l == nil {
		l = slog.Default()
	}
	ctx := context.Background()
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	attrs := make([]any, 0, 2)
	if len(args) == 2 {
		attrs = append(attrs, slog.Any("func", args[0]), slog.Any("elapsed", args[1]))
	}
	l.DebugContext(ctx, fmt.Sprintf(format, args...), attrs...)
}

var _ contexttimer.Reporter = (*Reporter)(nil)
