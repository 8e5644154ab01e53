package ui

import (
	"fmt"
	"io"
	"iter"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"testflo/internal/domain"
)

// ProgressBar shows a running count of passed and failed tests. The number
// of tests is not known up front, so the bar spins.
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	passed  int
	failed  int
	skipped int
}

// NewProgressBar creates a new progress bar writing to w
func NewProgressBar(w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(describe(0, 0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetItsString("tests"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Stage advances the bar for each result and passes it on unchanged
func (p *ProgressBar) Stage(results iter.Seq[domain.TestResult]) iter.Seq[domain.TestResult] {
	return func(yield func(domain.TestResult) bool) {
		defer p.Finish()
		for result := range results {
			p.Update(result.Status)
			if !yield(result) {
				return
			}
		}
	}
}

// Update records one result
func (p *ProgressBar) Update(status domain.Status) {
	switch status {
	case domain.StatusOK:
		p.passed++
	case domain.StatusFail:
		p.failed++
	case domain.StatusSkip:
		p.skipped++
	}
	_ = p.bar.Add(1)
	p.bar.Describe(describe(p.passed, p.failed, p.skipped))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

func describe(passed, failed, skipped int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d", failed) +
		" | " +
		color.YellowString("skipped: %d]", skipped)
}
