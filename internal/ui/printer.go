package ui

import (
	"fmt"
	"io"
	"iter"

	"github.com/fatih/color"

	"testflo/internal/domain"
)

type flusher interface {
	Flush() error
}

// Printer writes the progress of a test run: one marker per result, or a
// full line per result in verbose mode. Failure details are always shown.
type Printer struct {
	w       io.Writer
	verbose bool
	colors  map[domain.Status]*color.Color
	err     error
}

// PrinterOption configures a Printer
type PrinterOption func(*Printer)

// WithColor colours status markers
func WithColor() PrinterOption {
	return func(p *Printer) {
		p.colors = map[domain.Status]*color.Color{
			domain.StatusOK:   color.New(color.FgGreen),
			domain.StatusFail: color.New(color.FgRed, color.Bold),
			domain.StatusSkip: color.New(color.FgYellow),
		}
	}
}

// NewPrinter creates a new Printer
func NewPrinter(w io.Writer, verbose bool, opts ...PrinterOption) *Printer {
	p := &Printer{w: w, verbose: verbose}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stage prints each result and passes it on unchanged
func (p *Printer) Stage(results iter.Seq[domain.TestResult]) iter.Seq[domain.TestResult] {
	return func(yield func(domain.TestResult) bool) {
		for result := range results {
			p.print(result)
			if !yield(result) {
				return
			}
		}
	}
}

// Err returns the first write error, if any
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) print(result domain.TestResult) {
	status := p.paint(result.Status, result.Status.String())
	elapsed := domain.ElapsedDuration(result.Elapsed())

	if p.verbose {
		p.write("%s ... %s (%s)\n%s", result.ID, status, elapsed, result.Err)
		if result.Err != "" {
			p.write("\n")
		}
	} else {
		switch result.Status {
		case domain.StatusOK:
			p.write("%s", p.paint(result.Status, "."))
		case domain.StatusFail:
			p.write("%s", p.paint(result.Status, "F"))
		case domain.StatusSkip:
			p.write("%s", p.paint(result.Status, "S"))
		}

		if result.Err != "" {
			switch result.Status {
			case domain.StatusFail:
				p.write("\n%s ... %s (%s)\n%s\n", result.ID, status, elapsed, result.Err)
			case domain.StatusSkip:
				p.write("\n%s: SKIP: %s\n", result.ShortName(), result.Err)
			}
		}
	}

	if f, ok := p.w.(flusher); ok {
		if err := f.Flush(); err != nil && p.err == nil {
			p.err = fmt.Errorf("flush output: %w", err)
		}
	}
}

func (p *Printer) paint(status domain.Status, s string) string {
	if c, ok := p.colors[status]; ok {
		return c.Sprint(s)
	}
	return s
}

func (p *Printer) write(format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		p.err = fmt.Errorf("write output: %w", err)
	}
}
