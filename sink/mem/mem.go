package mem

import (
	"fmt"
	"sync"

	"github.com/jeblackburn/contexttimer"
)

// Report is one recorded Debugf call.
type Report struct {
	Format string
	Args   []any
}

// Message renders the report.
func (r Report) Message() string { return fmt.Sprintf(r.Format, r.Args...) }

// Sink keeps every report in memory.
type Sink struct {
	mu      sync.Mutex
	reports []Report
}

// New returns an empty Sink.
func New() *Sink { return &Sink{} }

// Debugf records the rendered line along with its format and args.
func (s *Sink) Debugf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, Report{Format: format, Args: append([]any(nil), args...)})
}

// Reports returns a copy of the recorded reports in call order.
func (s *Sink) Reports() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// Messages returns the rendered reports in call order.
func (s *Sink) Messages() []string {
	reports := s.Reports()
	msgs := make([]string, 0, len(reports))
	for _, r := range reports {
		msgs = append(msgs, r.Message())
	}
	return msgs
}

// Reset drops all recorded reports.
func (s *Sink) Reset() {
	s.mu.Lock()
	s.reports = nil
	s.mu.Unlock()
}

var _ contexttimer.Reporter = (*Sink)(nil)
