package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal is a terminal used for input. If `nil`, stdin is used.
var Terminal *term.Terminal

// ReadWriter combines separate reader and writer into a terminal-capable
// io.ReadWriter.
type ReadWriter struct {
	io.Reader
	io.Writer
}

// ReadLine reads line from the input without trailing '\n'.
func ReadLine(w io.Writer, prompt string) (string, error) {
	if Terminal != nil {
		_, err := Terminal.Write([]byte(prompt))
		if err != nil {
			return "", err
		}
		raw, err := Terminal.ReadLine()
		return strings.TrimRight(raw, "\r\n"), err
	}
	fmt.Fprint(w, prompt)
	raw, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && (err != io.EOF || len(raw) == 0) {
		return "", err
	}
	return strings.TrimRight(raw, "\r\n"), nil
}

// Confirm asks the user a yes/no question, only "y" and "yes" answers are
// treated as positive.
func Confirm(w io.Writer, prompt string) (bool, error) {
	line, err := ReadLine(w, prompt+" [y/N] > ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// IsTerminal returns true if stdin is an interactive terminal.
func IsTerminal() bool {
	return Terminal != nil || term.IsTerminal(int(os.Stdin.Fd()))
}
