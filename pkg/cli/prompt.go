package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

type lineResult struct {
	line string
	err  error
}

// Prompter reads answers from the console one line at a time. A single
// background reader feeds the lines so a prompt can be abandoned when the
// context is cancelled.
type Prompter struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan lineResult
	err   error // sticky end-of-input
}

// NewPrompter creates a prompter reading from in and writing labels to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    in,
		out:   out,
		lines: make(chan lineResult),
	}
}

func (p *Prompter) start() {
	go func() {
		r := bufio.NewReader(p.in)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				p.lines <- lineResult{line: strings.TrimRight(line, "\r\n")}
			}
			if err != nil {
				p.lines <- lineResult{err: err}
				return
			}
		}
	}()
}

// Ask prints label and returns the next trimmed input line. It returns io.EOF
// at end of input and the context error when ctx is cancelled first.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, label)

	if p.err != nil {
		return "", p.err
	}
	p.once.Do(p.start)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case r := <-p.lines:
		if r.err != nil {
			p.err = r.err
			fmt.Fprintln(p.out)
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

// Confirm asks whether key should be deleted
func (p *Prompter) Confirm(ctx context.Context, key string) (string, error) {
	return p.Ask(ctx, fmt.Sprintf("Delete %s? [y/N]: ", key))
}

// isAborted reports whether a prompt ended because input was closed or the
// user interrupted the process
func isAborted(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}
