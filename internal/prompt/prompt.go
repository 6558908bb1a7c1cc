// Package prompt asks questions on an interactive terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the input ends before any answer is read.
var ErrNoInput = fmt.Errorf("no answer received: %w", io.EOF)

// Prompter writes a question and blocks until one line is answered.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading answers from in and writing questions
// to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask writes question to the output and returns the next input line with
// its line ending removed. A final line without a newline is still
// returned; an input that ends with nothing left returns ErrNoInput.
func (p *Prompter) Ask(question string) (string, error) {
	if _, err := io.WriteString(p.out, question); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", err)
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks question and reports the answer as one of Yes, No or
// Unknown. Answers are compared case-insensitively after trimming.
func (p *Prompter) Confirm(question string) (Answer, error) {
	reply, err := p.Ask(question)
	if err != nil {
		return Unknown, err
	}
	return ParseAnswer(reply), nil
}

// Answer is the outcome of a yes/no question.
type Answer int

const (
	Unknown Answer = iota
	Yes
	No
)

// ParseAnswer maps "y"/"Y" to Yes and "n"/"N" to No; everything else is
// Unknown.
func ParseAnswer(reply string) Answer {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y":
		return Yes
	case "n":
		return No
	default:
		return Unknown
	}
}
