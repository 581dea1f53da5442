package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// errTerminal marks a failure to read from the terminal. Together with
// io.EOF it ends the session instead of being rendered as a message.
var errTerminal = errors.New("terminal read failed")

func isTerminalErr(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, errTerminal)
}

// Terminal reads answers to prompts. When input is an interactive terminal
// secrets are read with echo disabled; otherwise they are read as plain
// lines so the menus can be scripted.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	fd    int
	isTTY bool
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.isTTY = true
	}
	return t
}

func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) Println(args ...any) {
	fmt.Fprintln(t.out, args...)
}

// ReadLine prints prompt and returns the next line without surrounding
// whitespace. io.EOF is returned only when no characters were read.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("ReadLine: %w: %w", errTerminal, err)
		}
		if line == "" {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret reads a line with echo disabled when input is a terminal.
// Input already buffered by an earlier read was typed ahead with echo on;
// it is consumed in order through the buffer rather than skipped.
func (t *Terminal) ReadSecret(prompt string) (string, error) {
	if !t.isTTY || t.in.Buffered() > 0 {
		return t.ReadLine(prompt)
	}
	fmt.Fprint(t.out, prompt)
	b, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if errors.Is(err, io.EOF) {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("ReadSecret: %w: %w", errTerminal, err)
	}
	return strings.TrimSpace(string(b)), nil
}
