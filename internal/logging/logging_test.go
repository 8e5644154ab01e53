package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Error().Str("unit", "a_test.go").Msg("failed to load unit")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "failed to load unit")
	assert.Contains(t, out, "a_test.go")

	buf.Reset()
	logger = New(&buf, true)
	logger.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
