/*
Package testcli contains auxiliary code to test CLI commands against a fake
JSON-RPC node.
*/
package testcli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nspcc-dev/near-go/cli/app"
	"github.com/nspcc-dev/near-go/cli/input"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

// Executor represents context for a test instance.
// It can be safely used in multiple tests, but not in parallel.
type Executor struct {
	// CLI is a cli application to test.
	CLI *cli.App
	// Node is a fake RPC node to query.
	Node *FakeNode
	// Out contains command output.
	Out *bytes.Buffer
	// Err contains command errors.
	Err *bytes.Buffer
	// In contains command input.
	In *bytes.Buffer
}

// NewExecutor creates an Executor with a fresh application and fake node.
func NewExecutor(t *testing.T) *Executor {
	e := &Executor{
		CLI:  app.New(),
		Node: NewFakeNode(t),
		Out:  bytes.NewBuffer(nil),
		Err:  bytes.NewBuffer(nil),
		In:   bytes.NewBuffer(nil),
	}
	e.CLI.Writer = e.Out
	e.CLI.ErrWriter = e.Err
	t.Cleanup(func() {
		input.Terminal = nil
	})
	return e
}

// Endpoint returns fake node address with a path that is expected to be
// ignored by the client.
func (e *Executor) Endpoint() string {
	return e.Node.URL + "/ignored/path"
}

// GetNextLine returns the next line of the command output.
func (e *Executor) GetNextLine(t *testing.T) string {
	line, err := e.Out.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimSuffix(line, "\n")
}

// CheckNextLine checks the next output line to match the expected regexp.
func (e *Executor) CheckNextLine(t *testing.T, expected string) {
	line := e.GetNextLine(t)
	require.Regexp(t, expected, line)
}

// CheckEOF checks there is no more output.
func (e *Executor) CheckEOF(t *testing.T) {
	_, err := e.Out.ReadString('\n')
	require.True(t, errors.Is(err, io.EOF))
}

func setExitFunc() <-chan int {
	ch := make(chan int, 1)
	cli.OsExiter = func(code int) {
		ch <- code
	}
	return ch
}

func checkExit(t *testing.T, ch <-chan int, code int) {
	select {
	case c := <-ch:
		require.Equal(t, code, c)
	default:
		if code != 0 {
			require.Fail(t, "no exit was called")
		}
	}
}

// RunWithError runs command and checks that is exits with error.
func (e *Executor) RunWithError(t *testing.T, args ...string) error {
	ch := setExitFunc()
	err := e.run(args...)
	require.Error(t, err)
	checkExit(t, ch, 1)
	return err
}

// Run runs command and checks that there were no errors.
func (e *Executor) Run(t *testing.T, args ...string) {
	ch := setExitFunc()
	require.NoError(t, e.run(args...))
	checkExit(t, ch, 0)
}

func (e *Executor) run(args ...string) error {
	e.Out.Reset()
	e.Err.Reset()
	input.Terminal = term.NewTerminal(input.ReadWriter{
		Reader: e.In,
		Writer: io.Discard,
	}, "")
	err := e.CLI.Run(args)
	input.Terminal = nil
	e.In.Reset()
	return err
}
