package fs

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeblackburn/contexttimer"
	"github.com/spf13/afero"
)

// Sink appends one line per report to a file.
type Sink struct {
	path string
	fs   afero.Fs

	mu  sync.Mutex
	err error
}

// New returns a Sink appending to path on the OS filesystem.
func New(path string) *Sink { return &Sink{path: path, fs: afero.NewOsFs()} }

// NewWithFS returns a Sink appending to path on fsys.
func NewWithFS(path string, fsys afero.Fs) *Sink { return &Sink{path: path, fs: fsys} }

// Path returns the file the sink appends to.
func (s *Sink) Path() string { return s.path }

// Debugf renders the report and appends it. Failures are logged and kept for Err.
func (s *Sink) Debugf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.appendLine(fmt.Sprintf(format, args...)); err != nil {
		slog.Warn("timing report dropped", "path", s.path, "err", err)
		s.err = err
	}
}

// Err returns the last write failure, if any.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Sink) appendLine(line string) error {
	af := &afero.Afero{Fs: s.fs}
	if err := af.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(w, line); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var _ contexttimer.Reporter = (*Sink)(nil)
