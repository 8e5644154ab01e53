package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedStr(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:0.00"},
		{3661.5, "01:01:1.50"},
		{59.999, "00:00:60.00"},
		{61.25, "00:01:1.25"},
		{7322.01, "02:02:2.01"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ElapsedStr(tt.seconds))
		})
	}
}

func TestElapsedDuration(t *testing.T) {
	assert.Equal(t, "00:01:30.00", ElapsedDuration(90*time.Second))
}

func TestTestResult(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)

	t.Run("elapsed", func(t *testing.T) {
		r := NewTestResult("pkg/a_test.go:TestX", StatusOK, "", start, end)
		assert.Equal(t, 1500*time.Millisecond, r.Elapsed())
		assert.Equal(t, "a_test.go:TestX", r.ShortName())
	})

	t.Run("elapsed never negative", func(t *testing.T) {
		r := NewTestResult("a_test.go:TestX", StatusOK, "", end, start)
		assert.Equal(t, time.Duration(0), r.Elapsed())
	})

	t.Run("string with message", func(t *testing.T) {
		r := NewTestResult("a_test.go:TestX", StatusFail, "boom", start, end)
		assert.Equal(t, "a_test.go:TestX: FAIL\nboom", r.String())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "OK", StatusOK.String())
	assert.Equal(t, "FAIL", StatusFail.String())
	assert.Equal(t, "SKIP", StatusSkip.String())
}
