package ui

import (
	"fmt"
	"iter"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"testflo/internal/domain"
)

// FailureCollector keeps the failed results passing through it
type FailureCollector struct {
	failures []domain.TestResult
}

// NewFailureCollector creates a new FailureCollector
func NewFailureCollector() *FailureCollector {
	return &FailureCollector{}
}

// Stage records failures and passes every result on unchanged
func (fc *FailureCollector) Stage(results iter.Seq[domain.TestResult]) iter.Seq[domain.TestResult] {
	return func(yield func(domain.TestResult) bool) {
		for result := range results {
			if result.Status == domain.StatusFail {
				fc.failures = append(fc.failures, result)
			}
			if !yield(result) {
				return
			}
		}
	}
}

// Failures returns the failed results in arrival order
func (fc *FailureCollector) Failures() []domain.TestResult {
	return fc.failures
}

// FailureViewer displays test failures in an interactive TUI
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

// View opens a browser over failures and blocks until the user quits
func (fv *FailureViewer) View(failures []domain.TestResult) error {
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()
	b := newFailureBrowser(failures)
	b.onQuit = app.Stop
	b.onFocus = func(p tview.Primitive) { app.SetFocus(p) }

	if err := app.SetRoot(b.layout, true).SetFocus(b.list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// failureBrowser is a list of failed tests beside the output of the
// selected one
type failureBrowser struct {
	failures []domain.TestResult
	list     *tview.List
	details  *tview.TextView
	layout   *tview.Flex

	onQuit  func()
	onFocus func(tview.Primitive)
}

func newFailureBrowser(failures []domain.TestResult) *failureBrowser {
	b := &failureBrowser{
		failures: failures,
		onQuit:   func() {},
		onFocus:  func(tview.Primitive) {},
	}

	b.list = tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true)
	b.list.SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	b.list.SetBorder(true).SetTitle(fmt.Sprintf(" %d failed ", len(failures)))
	for _, failure := range failures {
		b.list.AddItem(tview.Escape(failure.ShortName()), "", 0, nil)
	}

	b.details = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	b.details.SetBorder(true).SetTitle(" output ")

	help := tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]↑↓[white] select  [yellow]Tab[white] switch pane  [yellow]q[white] quit")

	b.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(b.list, 0, 1, true).
			AddItem(b.details, 0, 2, false), 0, 1, true).
		AddItem(help, 1, 0, false)

	b.list.SetChangedFunc(func(index int, _, _ string, _ rune) {
		b.show(index)
	})
	b.list.SetInputCapture(b.keys(b.details))
	b.details.SetInputCapture(b.keys(b.list))

	b.show(0)
	return b
}

// show puts the failure at index in the details pane
func (b *failureBrowser) show(index int) {
	if index < 0 || index >= len(b.failures) {
		return
	}
	failure := b.failures[index]
	b.details.SetText(formatFailureStats(failure) + "\n" + formatFailureDetails(failure)).ScrollToBeginning()
}

// keys handles quitting and moving focus to other
func (b *failureBrowser) keys(other tview.Primitive) func(*tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyTab:
			b.onFocus(other)
			return nil
		case event.Key() == tcell.KeyEsc, event.Key() == tcell.KeyRune && event.Rune() == 'q':
			b.onQuit()
			return nil
		}
		return event
	}
}

// formatFailureDetails formats a failure using tview color tags
func formatFailureDetails(failure domain.TestResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[red]✗ %s[white]\n", tview.Escape(failure.ID.String()))
	fmt.Fprintf(&sb, "[cyan]elapsed:[white] %s\n\n", domain.ElapsedDuration(failure.Elapsed()))
	if failure.Err == "" {
		sb.WriteString("[gray](no output)[white]\n")
	} else {
		sb.WriteString(tview.Escape(failure.Err))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatFailureStats formats the unit and test name of a failure
func formatFailureStats(failure domain.TestResult) string {
	unit, rest, _ := failure.ID.Split()
	if rest == "" {
		rest = "(whole unit)"
	}
	return fmt.Sprintf("[cyan]unit:[white] [yellow]%s[white]:[yellow]%s[white]\n", tview.Escape(unit), tview.Escape(rest))
}
