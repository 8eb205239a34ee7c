package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/juhahinkula/classroom-fix/internal/fix"
	"github.com/juhahinkula/classroom-fix/internal/logging"
	"github.com/juhahinkula/classroom-fix/internal/runner"
	"github.com/juhahinkula/classroom-fix/pkg/classroom"
	"github.com/juhahinkula/classroom-fix/pkg/config"
	"github.com/juhahinkula/classroom-fix/pkg/fuzzy"
	"github.com/juhahinkula/classroom-fix/pkg/github"
)

var (
	configPath string
	dryRun     bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "classroom-fix",
	Short: "Repair pending GitHub Classroom repository invitations",
	Long: `classroom-fix walks through the accepted assignments of a GitHub Classroom
assignment and, for every student whose repository invitation is still pending,
deletes the invitation and adds the student directly as a collaborator with
write permission.

Classrooms and assignments are listed with the gh-classroom extension, so the
gh CLI must be installed and authenticated:

  gh auth login
  gh extension install github/gh-classroom

Examples:
  # Pick a classroom and assignment interactively and repair invitations
  classroom-fix

  # Show what would be repaired without changing anything
  classroom-fix --dry-run

  # Use a different configuration file with debug logging
  classroom-fix --config ./classroom-fix.yaml --verbose`,
	Args:          cobra.NoArgs,
	RunE:          runFix,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and exits with status 1 on any error, 130 on interrupt
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}

// printError reports a failed command with its stderr, anything else as plain text
func printError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "Interrupted.")
		return
	}

	var cmdErr *runner.CommandError
	if errors.As(err, &cmdErr) {
		fmt.Fprintf(w, "Error running command: %s\n%s\n", cmdErr.Command, cmdErr.Stderr)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default ~/.classroom-fix/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show which invitations would be repaired without changing anything")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
}

// loadConfig reads the configuration from --config or the default location
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfigFromPath(configPath)
	}
	return config.LoadConfig()
}

func runFix(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Logging, os.Stderr)

	workflow, err := newWorkflow(cfg, logger, cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// a second signal gets the default behaviour
	go func() {
		<-ctx.Done()
		stop()
	}()

	_, err = workflow.Run(ctx)
	return err
}

// newWorkflow wires the runner, classroom client, invitation backend and selector from cfg
func newWorkflow(cfg *config.Config, logger *slog.Logger, cmd *cobra.Command) (*fix.Workflow, error) {
	r, err := runner.New(cfg.GitHub.Command, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid github.command: %w", err)
	}

	api, err := github.NewInvitationAPI(cfg, r)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", github.GetAuthInstructions())
		return nil, fmt.Errorf("failed to set up %s backend: %w", cfg.GitHub.Backend, err)
	}

	var selector fuzzy.Selector
	if cfg.Selector == config.SelectorFzf {
		selector = fuzzy.NewFzf()
	} else {
		selector = fuzzy.New()
	}

	logger.Debug("workflow configured",
		"command", r.Base(),
		"backend", cfg.GitHub.Backend,
		"selector", cfg.Selector,
		"dry_run", dryRun,
	)

	return &fix.Workflow{
		Classrooms: classroom.NewClient(r),
		API:        api,
		Selector:   selector,
		Out:        cmd.OutOrStdout(),
		Logger:     logger,
		DryRun:     dryRun,
	}, nil
}
