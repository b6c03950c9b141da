package cmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angoly-ara/inventory/cmd"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	// runtime/debug.ReadBuildInfo()'s info.Settings called from a Go test is always empty,
	// so only the fallback is covered here.

	t.Run("show version", func(t *testing.T) {
		t.Parallel()

		output, err := cmd.TestExecute(t, cmd.Version("inventory"))
		assert.NoError(t, err)
		assert.Contains(t, output, "inventory version: @latest from ")
	})

	t.Run("no program name", func(t *testing.T) {
		t.Parallel()

		output, err := cmd.TestExecute(t, cmd.Version(" "))
		assert.NoError(t, err)
		assert.Equal(t, "version:", output[:8], "should not start with leading space")
		assert.NotContains(t, output, "%!(EXTRA")

		output, err = cmd.TestExecute(t, cmd.Version(""), "-h")
		assert.NoError(t, err)
		assert.NotContains(t, output, "Print  ")
	})

	t.Run("don't allow sub commands", func(t *testing.T) {
		t.Parallel()

		output, err := cmd.TestExecute(t, cmd.Version(""), "sub-command")
		assert.Error(t, err)
		assert.Contains(t, output, "unknown command")
		assert.NotContains(t, output, "[flags]")
	})
}
