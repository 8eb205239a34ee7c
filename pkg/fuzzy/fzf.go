package fuzzy

import (
	"context"
	"fmt"
	"os"

	fzf "github.com/junegunn/fzf/src"
	"golang.org/x/term"
)

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// FzfFinder selects options with fzf and falls back to a numbered menu
// when stdin/stdout are not terminals or fzf cannot start
type FzfFinder struct {
	runner     FzfRunner
	fallback   Selector
	isTerminal func() bool
}

// NewFzf creates an fzf finder on the real terminal
func NewFzf() *FzfFinder {
	return &FzfFinder{
		runner:     &DefaultFzfRunner{},
		fallback:   New(),
		isTerminal: stdioIsTerminal,
	}
}

// NewFzfWithRunner creates an fzf finder with a custom runner and fallback (for testing)
func NewFzfWithRunner(runner FzfRunner, fallback Selector) *FzfFinder {
	return &FzfFinder{
		runner:     runner,
		fallback:   fallback,
		isTerminal: func() bool { return true },
	}
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Select runs fzf over the formatted options and maps the chosen line back to its index
func (f *FzfFinder) Select(ctx context.Context, header, prompt string, options []Option) (int, error) {
	if len(options) == 0 {
		return -1, ErrNoOptions
	}
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	if !f.isTerminal() {
		return f.fallback.Select(ctx, header, prompt, options)
	}

	lines := make([]string, len(options))
	for i, option := range options {
		lines[i] = FormatOption(i, option)
	}

	args := []string{
		"--prompt=" + prompt,
		"--header=" + header,
		"--height=40%",
		"--layout=reverse",
		"--no-multi",
		"--cycle",
		"--tiebreak=index",
		"--no-mouse",
	}

	opts, err := fzf.ParseOptions(true, args)
	if err != nil {
		return -1, fmt.Errorf("failed to parse fzf options: %w", err)
	}

	input := make(chan string, len(lines))
	for _, line := range lines {
		input <- line
	}
	close(input)

	output := make(chan string, len(lines))
	opts.Input = input
	opts.Output = output

	exitCode, err := f.runner.Run(opts)
	if err != nil {
		return f.fallback.Select(ctx, header, prompt, options)
	}

	if exitCode != fzf.ExitOk {
		return -1, fmt.Errorf("fzf selection cancelled or failed (exit code %d)", exitCode)
	}

	var selected string
	select {
	case selected = <-output:
	default:
		return -1, fmt.Errorf("no selection made")
	}

	for i, line := range lines {
		if line == selected {
			return i, nil
		}
	}

	return -1, fmt.Errorf("fzf returned an unknown option: %q", selected)
}

// Ensure FzfFinder implements the interface
var _ Selector = (*FzfFinder)(nil)
