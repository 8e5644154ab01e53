package ui

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"time"

	"testflo/internal/domain"
)

// Totals are the counters of a finished run
type Totals struct {
	Total   int
	OK      int
	Failed  int
	Skipped int
}

// Summary counts results as they pass and writes a report once the stream
// is exhausted
type Summary struct {
	w     io.Writer
	now   func() time.Time
	start time.Time

	totals  Totals
	failed  []string
	skipped []string
	err     error
}

// SummaryOption configures a Summary
type SummaryOption func(*Summary)

// WithClock replaces time.Now
func WithClock(now func() time.Time) SummaryOption {
	return func(s *Summary) {
		s.now = now
	}
}

// NewSummary creates a new Summary. The run's wall clock starts now.
func NewSummary(w io.Writer, opts ...SummaryOption) *Summary {
	s := &Summary{w: w, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.start = s.now()
	return s
}

// Stage counts each result and passes it on unchanged. The report is only
// written if the input runs to its end.
func (s *Summary) Stage(results iter.Seq[domain.TestResult]) iter.Seq[domain.TestResult] {
	return func(yield func(domain.TestResult) bool) {
		for result := range results {
			s.totals.Total++
			switch result.Status {
			case domain.StatusOK:
				s.totals.OK++
			case domain.StatusFail:
				s.failed = append(s.failed, result.ShortName())
			case domain.StatusSkip:
				s.skipped = append(s.skipped, result.ShortName())
			}
			if !yield(result) {
				return
			}
		}
		s.report()
	}
}

// Totals returns the counters accumulated so far
func (s *Summary) Totals() Totals {
	t := s.totals
	t.Failed = len(s.failed)
	t.Skipped = len(s.skipped)
	return t
}

// Err returns the first write error, if any
func (s *Summary) Err() error {
	return s.err
}

func (s *Summary) report() {
	if len(s.skipped) > 0 {
		s.write("\n\nThe following tests were skipped:\n")
		for _, name := range sorted(s.skipped) {
			s.write("%s\n", name)
		}
	}

	if len(s.failed) > 0 {
		s.write("\n\nThe following tests failed:\n")
		for _, name := range sorted(s.failed) {
			s.write("%s\n", name)
		}
	} else {
		s.write("\n\nOK")
	}

	s.write("\n\nPassed:  %d\nFailed:  %d\nSkipped: %d\n", s.totals.OK, len(s.failed), len(s.skipped))

	plural := "s"
	if s.totals.Total == 1 {
		plural = ""
	}
	wallclock := s.now().Sub(s.start)
	s.write("\n\nRan %d test%s  (elapsed time: %s)\n\n", s.totals.Total, plural, domain.ElapsedDuration(wallclock))

	if f, ok := s.w.(flusher); ok {
		if err := f.Flush(); err != nil && s.err == nil {
			s.err = fmt.Errorf("flush output: %w", err)
		}
	}
}

func sorted(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return out
}

func (s *Summary) write(format string, args ...any) {
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprintf(s.w, format, args...); err != nil {
		s.err = fmt.Errorf("write output: %w", err)
	}
}
