package domain

import (
	"fmt"
	"time"
)

// Status is the outcome of a single test
type Status int

const (
	StatusOK Status = iota
	StatusFail
	StatusSkip
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// TestResult represents the outcome of running one identifier.
// Results are passed by value between pipeline stages and never modified
// once built.
type TestResult struct {
	ID     Identifier // Identifier that was run
	Status Status     // Outcome of the run
	Err    string     // Failure output or skip reason, may be empty
	Start  time.Time  // When the test started
	End    time.Time  // When the test finished
}

// NewTestResult creates a TestResult
func NewTestResult(id Identifier, status Status, errMsg string, start, end time.Time) TestResult {
	return TestResult{
		ID:     id,
		Status: status,
		Err:    errMsg,
		Start:  start,
		End:    end,
	}
}

// Elapsed returns the time the test took. It is never negative.
func (r TestResult) Elapsed() time.Duration {
	d := r.End.Sub(r.Start)
	if d < 0 {
		return 0
	}
	return d
}

// ShortName returns the identifier with the unit directory stripped
func (r TestResult) ShortName() string {
	return r.ID.ShortName()
}

func (r TestResult) String() string {
	if r.Err != "" {
		return fmt.Sprintf("%s: %s\n%s", r.ID, r.Status, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.ID, r.Status)
}
