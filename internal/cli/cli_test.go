package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jeblackburn/contexttimer/internal/application"
	"github.com/jeblackburn/contexttimer/internal/runner/fake"
	"github.com/jeblackburn/contexttimer/internal/runner/proc"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

// execute runs the root command with a fake runner and returns what the app
// wrote to stdout. Tests share cobra and viper globals, so none run in parallel.
func execute(t *testing.T, fsys afero.Fs, args ...string) (*fake.Runner, string, error) {
	t.Helper()
	return executeWith(t, fsys, fake.New(), args...)
}

func executeWith(t *testing.T, fsys afero.Fs, r *fake.Runner, args ...string) (*fake.Runner, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	newApp = func(cfg application.Config) *application.App {
		app := application.New(cfg, r)
		app.Clock = &stepClock{t: time.Unix(0, 0), step: 3 * time.Millisecond}
		app.FS = fsys
		app.Stdin = strings.NewReader("")
		app.Stdout = &stdout
		app.Stderr = &stderr
		app.Sleep = func(time.Duration) {}
		return app
	}
	t.Cleanup(func() { newApp = application.NewDefault })
	viper.SetFs(fsys)
	flagRunName = ""

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return r, stdout.String(), err
}

func TestRunCommand(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/etc/ct.yaml", []byte("factor: 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, out, err := execute(t, fsys, "run", "--config", "/etc/ct.yaml", "--name", "lister", "--", "ls", "-la")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(r.Ran) != 1 || r.Ran[0].Path != "ls" || strings.Join(r.Ran[0].Args, " ") != "-la" {
		t.Fatalf("unexpected commands %+v", r.Ran)
	}
	if out != "function lister execution time: 3.000\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunRequiresCommand(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/etc/ct.yaml", []byte("sink: stdout\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, fsys, "run", "--config", "/etc/ct.yaml"); err == nil {
		t.Fatalf("expected error without a command")
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(), "demo", "--config", "/nope.yaml")
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestDemoCommandWithFileSink(t *testing.T) {
	fsys := afero.NewMemMapFs()
	cfg := "factor: 1\nsink: file\nsink_file: /var/log/ct/demo.log\n"
	if err := afero.WriteFile(fsys, "/etc/ct.yaml", []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	_, out, err := execute(t, fsys, "demo", "--config", "/etc/ct.yaml", "--steps", "1")
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	if out != "step 1: 0.003\nscope: 0.006\n" {
		t.Fatalf("unexpected stdout %q", out)
	}
	b, err := afero.ReadFile(fsys, "/var/log/ct/demo.log")
	if err != nil {
		t.Fatalf("read sink file: %v", err)
	}
	if string(b) != "function demo.sleep execution time: 0.003\n" {
		t.Fatalf("unexpected sink file %q", b)
	}
}

func TestExitCodeFollowsChild(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/etc/ct.yaml", []byte("factor: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := fake.New()
	r.Err = &proc.ExitError{Code: 4}
	_, out, err := executeWith(t, fsys, r, "run", "--config", "/etc/ct.yaml", "--", "false")
	if err == nil {
		t.Fatalf("expected failure from child")
	}
	if got := exitCode(err); got != 4 {
		t.Fatalf("exit code %d, want 4", got)
	}
	if !strings.HasPrefix(out, "function false execution time: ") {
		t.Fatalf("failed command should still be reported: %q", out)
	}

	if got := exitCode(errors.New("read config: boom")); got != 1 {
		t.Fatalf("exit code for non-child error %d, want 1", got)
	}
}
