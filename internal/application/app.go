package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeblackburn/contexttimer"
	"github.com/jeblackburn/contexttimer/internal/runner"
	"github.com/jeblackburn/contexttimer/internal/runner/proc"
	fssink "github.com/jeblackburn/contexttimer/sink/fs"
	slogsink "github.com/jeblackburn/contexttimer/sink/slog"
	zerologsink "github.com/jeblackburn/contexttimer/sink/zerolog"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Sink names accepted in Config.Sink.
const (
	SinkStdout  = "stdout"
	SinkSlog    = "slog"
	SinkLogrus  = "logrus"
	SinkZerolog = "zerolog"
	SinkFile    = "file"
)

var ErrUnknownSink = errors.New("unknown sink")

// Config is the resolved CLI configuration.
type Config struct {
	Factor   float64
	Sink     string
	SinkFile string
	JSON     bool
}

func DefaultConfig() Config {
	return Config{Factor: contexttimer.Seconds, Sink: SinkStdout}
}

type App struct {
	Config Config
	Runner runner.Runner
	Clock  contexttimer.Clock
	FS     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Sleep  func(time.Duration)
}

func New(cfg Config, r runner.Runner) *App {
	return &App{
		Config: cfg,
		Runner: r,
		Clock:  contexttimer.RealClock{},
		FS:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Sleep:  time.Sleep,
	}
}

func NewDefault(cfg Config) *App {
	return New(cfg, proc.New())
}

// Reporter builds the sink named by the config. A nil Reporter means plain
// output on Stdout.
func (a *App) Reporter() (contexttimer.Reporter, error) {
	switch strings.ToLower(a.Config.Sink) {
	case "", SinkStdout:
		return nil, nil
	case SinkSlog:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		var h slog.Handler
		if a.Config.JSON {
			h = slog.NewJSONHandler(a.Stderr, opts)
		} else {
			h = slog.NewTextHandler(a.Stderr, opts)
		}
		return slogsink.New(slog.New(h)), nil
	case SinkLogrus:
		l := logrus.New()
		l.SetOutput(a.Stderr)
		l.SetLevel(logrus.DebugLevel)
		if a.Config.JSON {
			l.SetFormatter(&logrus.JSONFormatter{})
		}
		return l, nil
	case SinkZerolog:
		var w io.Writer = a.Stderr
		if !a.Config.JSON {
			w = zerolog.ConsoleWriter{Out: a.Stderr, NoColor: true}
		}
		return zerologsink.New(zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()), nil
	case SinkFile:
		if a.Config.SinkFile == "" {
			return nil, fmt.Errorf("sink %q requires a file path", SinkFile)
		}
		return fssink.NewWithFS(a.Config.SinkFile, a.FS), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, a.Config.Sink)
	}
}

// Decorator returns a Decorator for the configured clock, factor and sink.
func (a *App) Decorator(opts ...contexttimer.Option) (*contexttimer.Decorator, error) {
	rep, err := a.Reporter()
	if err != nil {
		return nil, err
	}
	base := []contexttimer.Option{
		contexttimer.WithClock(a.Clock),
		contexttimer.WithFactor(a.Config.Factor),
		contexttimer.WithOutput(a.Stdout),
	}
	if rep != nil {
		base = append(base, contexttimer.WithReporter(rep))
	}
	return contexttimer.TimedWith(append(base, opts...)...), nil
}

type RunParams struct {
	// Name overrides the reported name; defaults to the command's base name.
	Name string
	Argv []string
}

// Run executes an external command and reports how long it took. The report
// is written even when the command fails.
func (a *App) Run(ctx context.Context, p RunParams) error {
	if len(p.Argv) == 0 {
		return errors.New("no command given")
	}
	name := p.Name
	if name == "" {
		name = filepath.Base(p.Argv[0])
	}
	d, err := a.Decorator()
	if err != nil {
		return err
	}
	cmd := runner.Command{
		Path:   p.Argv[0],
		Args:   p.Argv[1:],
		Stdin:  a.Stdin,
		Stdout: a.Stdout,
		Stderr: a.Stderr,
	}
	slog.Debug("running command", "name", name, "argv", p.Argv)
	run := d.FuncCtx(name, func(ctx context.Context) error {
		return a.Runner.Run(ctx, cmd)
	})
	if err := run(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
