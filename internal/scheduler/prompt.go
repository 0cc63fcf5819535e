package scheduler

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter solicits a secret from the user.
type Prompter interface {
	Password(prompt string) (string, error)
}

// Environment reads the ambient process environment.
type Environment interface {
	Getenv(key string) string
}

type osEnvironment struct{}

// OSEnvironment reads variables with os.Getenv.
func OSEnvironment() Environment {
	return osEnvironment{}
}

func (osEnvironment) Getenv(key string) string {
	return os.Getenv(key)
}

// TerminalPrompter reads a masked password from the terminal, falling back to
// a plain line read when stdin is not a terminal.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter prompts on stderr and reads stdin.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Password implements Prompter.
func (p *TerminalPrompter) Password(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.Out, prompt)

	fd := int(p.In.Fd())

	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		return strings.TrimRight(line, "\r\n"), nil
	}

	bytePassword, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(p.Out)

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(bytePassword), nil
}
