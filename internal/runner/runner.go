package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/junegunn/go-shellwords"
)

// DefaultCommand is the base command used when none is configured
const DefaultCommand = "gh"

// Runner executes an external command and returns its trimmed standard output
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// CommandError is returned when an external command cannot be started or exits non-zero
type CommandError struct {
	Command  string
	Stderr   string
	ExitCode int
	Err      error
}

// Error implements the error interface
func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command %q failed (exit code %d): %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("command %q failed (exit code %d): %v", e.Command, e.ExitCode, e.Err)
}

// Unwrap returns the underlying error
func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs a base command (for example "gh") followed by per-call arguments
type ExecRunner struct {
	base   []string
	logger *slog.Logger
}

// New creates an ExecRunner from a shell-style command line such as "gh" or "/opt/gh/bin/gh --hostname example.com"
func New(command string, logger *slog.Logger) (*ExecRunner, error) {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}

	base, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", command, err)
	}
	if len(base) == 0 {
		return nil, fmt.Errorf("command %q is empty", command)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ExecRunner{base: base, logger: logger}, nil
}

// Base returns the parsed base command
func (r *ExecRunner) Base() []string {
	return append([]string(nil), r.base...)
}

// Run executes the command synchronously. There is no retry and no timeout beyond ctx.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	argv := append(r.Base(), args...)
	commandLine := strings.Join(argv, " ")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running command", "command", commandLine)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		r.logger.Debug("command failed", "command", commandLine, "exit_code", exitCode)

		// killed because ctx was cancelled
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		return "", &CommandError{
			Command:  commandLine,
			Stderr:   strings.TrimSpace(stderr.String()),
			ExitCode: exitCode,
			Err:      err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Ensure ExecRunner implements the interface
var _ Runner = (*ExecRunner)(nil)
