package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// mu synchronises the tests, as os.Stdout and os.Stderr
// are replaced while a command is executed.
var mu sync.Mutex

// TestExecute is a helper that executes a cobra command and returns its output and error.
// Output written to the command and to os.Stdout and os.Stderr is captured.
func TestExecute(t *testing.T, command *cobra.Command, args ...string) (string, error) {
	t.Helper()

	return TestExecuteWithInput(t, command, "", args...)
}

// TestExecuteWithInput works like TestExecute and lets the command read input from its stdin.
func TestExecuteWithInput(t *testing.T, command *cobra.Command, input string, args ...string) (string, error) {
	t.Helper()

	mu.Lock()
	defer mu.Unlock()

	buf := new(syncBuffer)
	command.SetOut(buf)
	command.SetErr(buf)
	command.SetIn(strings.NewReader(input))

	stdout, stderr := os.Stdout, os.Stderr

	rOut, wOut, err := os.Pipe()
	require.NoError(t, err)
	rErr, wErr, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = wOut, wErr

	// read the pipes while the command runs, so a lot of output does not block it
	var wg sync.WaitGroup
	for _, r := range []io.Reader{rOut, rErr} {
		wg.Add(1)

		go func(r io.Reader) {
			defer wg.Done()

			_, _ = io.Copy(buf, r)
		}(r)
	}

	command.SetArgs(args)
	_, cmdErr := command.ExecuteC()

	require.NoError(t, wOut.Close())
	require.NoError(t, wErr.Close())
	wg.Wait()

	os.Stdout, os.Stderr = stdout, stderr

	return buf.String(), cmdErr
}

// syncBuffer is a helper implementing io.Writer, used for concurrency safe testing.
type syncBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.Write(p) //nolint:wrapcheck
}

func (b *syncBuffer) String() string {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.String()
}
