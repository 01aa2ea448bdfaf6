package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptLine asks for a value on stderr and reads one line from stdin.
func promptLine(errOut io.Writer, label string) (string, error) {
	fmt.Fprintf(errOut, "%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword asks for a password without echo when stdin is a
// terminal; otherwise it falls back to a plain line read so the command
// stays scriptable.
func promptPassword(errOut io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(errOut, "password")
	}

	fmt.Fprint(errOut, "password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(errOut)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
