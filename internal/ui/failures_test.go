package ui

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"

	"testflo/internal/domain"
)

func TestFailureCollector(t *testing.T) {
	fc := NewFailureCollector()
	results := []domain.TestResult{
		result("a_test.go:TestA", domain.StatusOK, "", 0),
		result("a_test.go:TestB", domain.StatusFail, "boom", 0),
		result("a_test.go:TestC", domain.StatusSkip, "", 0),
		result("b_test.go:S.TestD", domain.StatusFail, "", 0),
	}

	got := slices.Collect(fc.Stage(slices.Values(results)))
	assert.Equal(t, results, got)
	assert.Equal(t, []domain.TestResult{results[1], results[3]}, fc.Failures())
}

func TestFailureViewer_Format(t *testing.T) {
	failure := result("pkg/a_test.go:S.TestB", domain.StatusFail, "expected [1]", 2*time.Second)

	details := formatFailureDetails(failure)
	assert.Contains(t, details, "pkg/a_test.go:S.TestB")
	assert.Contains(t, details, "00:00:2.00")
	// tview tags in output must be escaped
	assert.Contains(t, details, "expected [1[]")

	assert.True(t, strings.HasPrefix(formatFailureStats(failure), "[cyan]unit:[white] [yellow]pkg/a_test.go[white]:[yellow]S.TestB"))
	assert.Contains(t, formatFailureDetails(result("a_test.go:TestC", domain.StatusFail, "", 0)), "(no output)")
}

func TestFailureBrowser(t *testing.T) {
	failures := []domain.TestResult{
		result("pkg/a_test.go:TestA", domain.StatusFail, "first broke", 0),
		result("pkg/b_test.go:S.TestB", domain.StatusFail, "second broke", 0),
	}
	b := newFailureBrowser(failures)

	assert.Equal(t, 2, b.list.GetItemCount())
	main, _ := b.list.GetItemText(1)
	assert.Equal(t, "b_test.go:S.TestB", main)
	assert.Contains(t, b.details.GetText(true), "first broke")

	b.list.SetCurrentItem(1)
	assert.Contains(t, b.details.GetText(true), "second broke")

	quit := false
	var focused tview.Primitive
	b.onQuit = func() { quit = true }
	b.onFocus = func(p tview.Primitive) { focused = p }

	capture := b.list.GetInputCapture()
	assert.Nil(t, capture(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)))
	assert.Equal(t, tview.Primitive(b.details), focused)
	assert.Nil(t, capture(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, quit)

	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	assert.Equal(t, down, capture(down))
}

func TestFailureViewer_NoFailures(t *testing.T) {
	assert.NoError(t, NewFailureViewer().View(nil))
}

func TestProgressBar_Stage(t *testing.T) {
	var out bytes.Buffer
	p := NewProgressBar(&out)

	results := []domain.TestResult{
		result("a_test.go:TestA", domain.StatusOK, "", 0),
		result("a_test.go:TestB", domain.StatusFail, "", 0),
		result("a_test.go:TestC", domain.StatusSkip, "", 0),
	}
	got := slices.Collect(p.Stage(slices.Values(results)))

	assert.Equal(t, results, got)
	assert.Equal(t, 1, p.passed)
	assert.Equal(t, 1, p.failed)
	assert.Equal(t, 1, p.skipped)
	assert.NotEmpty(t, out.String())
}
