package proc

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/jeblackburn/contexttimer/internal/runner"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestRunSuccess(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)
	var out bytes.Buffer
	err := New().Run(context.Background(), runner.Command{Path: sh, Args: []string{"-c", "echo hi"}, Stdout: &out})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "hi\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunNonZeroExit(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)
	err := New().Run(context.Background(), runner.Command{Path: sh, Args: []string{"-c", "exit 3"}})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T %v", err, err)
	}
	if exitErr.Code != 3 {
		t.Fatalf("expected code 3, got %d", exitErr.Code)
	}
	var execErr *exec.ExitError
	if !errors.As(err, &execErr) {
		t.Fatalf("ExitError should unwrap to *exec.ExitError")
	}
	if err.Error() != "exit status 3" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRunCancelKillsChildIgnoringTERM(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	r := &Runner{WaitDelay: 100 * time.Millisecond}
	start := time.Now()
	err := r.Run(ctx, runner.Command{Path: sh, Args: []string{"-c", "trap '' TERM; sleep 5"}})
	took := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if took > 2*time.Second {
		t.Fatalf("Run blocked for %v after cancel", took)
	}
}

func TestRunMissingBinary(t *testing.T) {
	t.Parallel()
	err := New().Run(context.Background(), runner.Command{Path: "/nonexistent/contexttimer-binary"})
	if err == nil {
		t.Fatalf("expected error for missing binary")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("missing binary should not map to ExitError")
	}
}
