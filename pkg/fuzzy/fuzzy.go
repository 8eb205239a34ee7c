package fuzzy

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Option represents a selectable option
type Option struct {
	Value       string
	Description string
}

// Selector asks the operator to pick one option and returns its zero-based index.
// Cancelling ctx abandons the prompt with ctx.Err().
type Selector interface {
	Select(ctx context.Context, header, prompt string, options []Option) (int, error)
}

// ErrNoOptions is returned when there is nothing to choose from
var ErrNoOptions = errors.New("no options available")

// FormatOption renders an option as a 1-based menu line, e.g. "1. Intro to Systems (ID: C1)"
func FormatOption(index int, option Option) string {
	return fmt.Sprintf("%d. %s (ID: %s)", index+1, option.Description, option.Value)
}

// Finder is a numbered menu that keeps prompting until it gets a valid choice
type Finder struct {
	in  *bufio.Reader
	out io.Writer

	// read left running by a cancelled Select; the next read waits on it
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// New creates a numbered finder on stdin and stdout
func New() *Finder {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a numbered finder with custom input and output
func NewWithIO(in io.Reader, out io.Writer) *Finder {
	return &Finder{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Select prints the menu and reads choices until one is in range.
// There is no default and no cancel; only end of input stops the loop.
func (f *Finder) Select(ctx context.Context, header, prompt string, options []Option) (int, error) {
	if len(options) == 0 {
		return -1, ErrNoOptions
	}

	if header != "" {
		fmt.Fprintln(f.out, header)
	}
	for i, option := range options {
		fmt.Fprintln(f.out, FormatOption(i, option))
	}

	for {
		fmt.Fprint(f.out, prompt)

		line, err := f.readLine(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			fmt.Fprintln(f.out)
			return -1, ctxErr
		}
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(f.out)
			return -1, fmt.Errorf("failed to read selection: %w", err)
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(f.out, "Please enter a number.")
			continue
		}

		index := choice - 1
		if index < 0 || index >= len(options) {
			fmt.Fprintln(f.out, "Invalid choice.")
			continue
		}

		return index, nil
	}
}

// readLine reads one line in the background so a blocked terminal read does not outlive ctx
func (f *Finder) readLine(ctx context.Context) (string, error) {
	if f.pending == nil {
		result := make(chan readResult, 1)
		go func() {
			line, err := f.in.ReadString('\n')
			result <- readResult{line: line, err: err}
		}()
		f.pending = result
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-f.pending:
		f.pending = nil
		return r.line, r.err
	}
}

// Ensure Finder implements the interface
var _ Selector = (*Finder)(nil)
