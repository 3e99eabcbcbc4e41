package application

import (
	"context"
	"fmt"
	"time"

	"github.com/jeblackburn/contexttimer"
)

type DemoParams struct {
	Step  time.Duration
	Steps int
}

// Demo exercises both components: a scoped timer sampled while open and after
// it is stopped, then a decorated function reported through the configured sink.
func (a *App) Demo(ctx context.Context, p DemoParams) error {
	if p.Steps <= 0 {
		p.Steps = 3
	}
	if p.Step <= 0 {
		p.Step = 100 * time.Millisecond
	}

	scoped := contexttimer.New(
		contexttimer.WithClock(a.Clock),
		contexttimer.WithFactor(a.Config.Factor),
	)
	scoped.Do(func(t *contexttimer.Timer) {
		for i := 1; i <= p.Steps; i++ {
			a.Sleep(p.Step)
			fmt.Fprintf(a.Stdout, "step %d: %s\n", i, t)
		}
	})
	fmt.Fprintf(a.Stdout, "scope: %s\n", scoped)

	d, err := a.Decorator(contexttimer.WithName("demo.sleep"))
	if err != nil {
		return err
	}
	sleep := contexttimer.Wrap(d, func(ctx context.Context, n int) error {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			a.Sleep(p.Step)
		}
		return nil
	})
	return sleep(ctx, p.Steps)
}
