package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlags_ToConfigFlags(t *testing.T) {
	flags := Flags{
		ConfigFile:   "ci.yaml",
		Exclude:      []string{"gen"},
		Stop:         true,
		OpenFailures: true,
		NameFilter:   "*Add*",
		Timeout:      time.Minute,
		GoArgs:       []string{"-race"},
	}

	got := flags.ToConfigFlags()
	assert.Equal(t, "ci.yaml", got.ConfigFile)
	assert.Equal(t, []string{"gen"}, got.DirExclude)
	assert.True(t, got.Stop)
	assert.True(t, got.OpenFailures)
	assert.Equal(t, "*Add*", got.NameFilter)
	assert.Equal(t, time.Minute, got.Timeout)
	assert.Equal(t, []string{"-race"}, got.GoArgs)
}
