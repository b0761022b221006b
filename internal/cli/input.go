package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers from the user. Passwords are read without echo
// when the input is a terminal.
type Prompter struct {
	reader   *bufio.Reader
	out      io.Writer
	fd       int
	terminal bool
	// test seam for term.ReadPassword
	readPassword func(fd int) ([]byte, error)
}

// NewPrompter reads from in and writes prompts to out. fd is the input
// file descriptor, or -1 when in is not a file.
func NewPrompter(in io.Reader, out io.Writer, fd int) *Prompter {
	return &Prompter{
		reader:       bufio.NewReader(in),
		out:          out,
		fd:           fd,
		terminal:     fd >= 0 && term.IsTerminal(fd),
		readPassword: term.ReadPassword,
	}
}

// Text prints prompt and reads one trimmed line. A partial last line
// before EOF is returned.
func (p *Prompter) Text(prompt string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password reads a secret. The value is not trimmed.
func (p *Prompter) Password(prompt string) (string, error) {
	if !p.terminal {
		if _, err := fmt.Fprintf(p.out, "%s: ", prompt); err != nil {
			return "", err
		}
		line, err := p.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	if _, err := fmt.Fprintf(p.out, "%s: ", prompt); err != nil {
		return "", err
	}
	pw, err := p.readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
