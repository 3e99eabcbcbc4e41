package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/jeblackburn/contexttimer/internal/runner"
)

// Runner records commands and optionally fails or advances a clock while
// "running" them.
type Runner struct {
	mu     sync.Mutex
	Ran    []runner.Command
	Err    error
	OnRun  func(runner.Command)
	Output string
}

func New() *Runner { return &Runner{} }

func (r *Runner) Run(ctx context.Context, c runner.Command) error {
	r.mu.Lock()
	r.Ran = append(r.Ran, c)
	r.mu.Unlock()
	if r.OnRun != nil {
		r.OnRun(c)
	}
	if r.Output != "" && c.Stdout != nil {
		fmt.Fprint(c.Stdout, r.Output)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.Err
}

var _ runner.Runner = (*Runner)(nil)
