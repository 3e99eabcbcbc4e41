package proc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/jeblackburn/contexttimer/internal/runner"
)

// DefaultWaitDelay is how long a child may ignore SIGTERM before it is killed.
const DefaultWaitDelay = 5 * time.Second

type Runner struct {
	// WaitDelay bounds the wait after SIGTERM; the child is then killed and
	// its I/O pipes closed.
	WaitDelay time.Duration
}

// New returns a Runner using DefaultWaitDelay.
func New() *Runner { return &Runner{WaitDelay: DefaultWaitDelay} }

// Run execs the command and waits. A canceled context sends SIGTERM, then
// SIGKILL once WaitDelay has passed.
func (r *Runner) Run(ctx context.Context, c runner.Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
	cmd.WaitDelay = r.WaitDelay
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), err: err}
		}
		return err
	}
	return nil
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Code int
	err  error
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

func (e *ExitError) Unwrap() error { return e.err }

var _ runner.Runner = (*Runner)(nil)
