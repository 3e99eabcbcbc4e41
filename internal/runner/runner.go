package runner

import (
	"context"
	"io"
)

// Command is an external process to be timed.
type Command struct {
	Path   string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner starts a command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}
