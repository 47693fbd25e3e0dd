package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errNotInteractive = errors.New("stdin is not a terminal; pass --yes to skip confirmation")

// isTerminal reports whether r is an *os.File attached to a terminal.
// Readers that are not files (tests, pipes wrapped in buffers) count as
// interactive so callers can script answers.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

// isTTY reports whether r is a terminal. Unlike isTerminal, non-file readers
// do not count.
func isTTY(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a y/N question on w and reads the answer from r. Only "y" or
// "yes" confirm.
func confirm(r io.Reader, w io.Writer, question string) (bool, error) {
	if !isTerminal(r) {
		return false, errNotInteractive
	}
	fmt.Fprintf(w, "%s (y/N): ", question)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readPassword reads a password without echo from a terminal, or one line
// from any other reader.
func readPassword(r io.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	if isTTY(r) {
		b, err := term.ReadPassword(int(r.(*os.File).Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
