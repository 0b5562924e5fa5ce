// Package cli implements the overcheck command line.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/overcheck/internal/config"
	clierrors "github.com/ariel-frischer/overcheck/internal/errors"
	"github.com/ariel-frischer/overcheck/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions holds persistent flags and the state derived from them.
type globalOptions struct {
	configPath string
	logLevel   string
	logJSON    bool
	verbose    int

	loaded *config.Loaded
	logger *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "overcheck",
		Short: "Verify method override declarations across class hierarchies",
		Long: `overcheck verifies that methods marked as overrides really override
something defined on an ancestor, and reconciles property accessors that a
subclass redefines only partially.

Classes are described in YAML declaration files. Each marked method is
checked against the authoritative ancestor chosen by the resolution mode:
  recent   the nearest ancestor
  topmost  the most distant ancestor below the universal root

Configuration precedence (highest to lowest):
  1. Command line flags
  2. Environment variables (OVERCHECK_*)
  3. Project config (.overcheck/config.yml)
  4. User config (~/.config/overcheck/config.yml)
  5. Built-in defaults`,
		Example: `  # Verify declaration files
  overcheck verify classes.yaml more.yaml

  # Check against the most distant ancestor and emit JSON
  overcheck verify --mode topmost --format json classes.yaml

  # Re-verify whenever the file changes
  overcheck watch classes.yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.prepare,
	}
	root.SetFlagErrorFunc(flagError)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "project config file (default .overcheck/config.yml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON lines")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (-v info, -vv debug)")

	root.AddGroup(
		&cobra.Group{ID: groupVerify, Title: "Verification Commands:"},
		&cobra.Group{ID: groupConfig, Title: "Configuration Commands:"},
	)

	root.AddCommand(
		newVerifyCmd(opts),
		newWatchCmd(opts),
		newModesCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

const (
	groupVerify = "verify"
	groupConfig = "config"
)

// prepare loads configuration and builds the logger before any subcommand runs.
func (o *globalOptions) prepare(cmd *cobra.Command, _ []string) error {
	loaded, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: o.configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return withExitCode(ExitInvalidArguments, clierrors.ConfigParseError(err))
	}
	o.loaded = loaded

	level := loaded.Config.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = o.logLevel
	}
	base, err := logging.ParseLevel(level)
	if err != nil {
		return withExitCode(ExitInvalidArguments, clierrors.NewArgumentError(err.Error()))
	}

	jsonLogs := loaded.Config.LogJSON || o.logJSON
	o.logger = logging.NewAtLevel(logging.VerbosityToLevel(o.verbose, base), jsonLogs, cmd.ErrOrStderr())
	o.logger.Debug("configuration loaded",
		zap.String("mode", loaded.Config.Mode),
		zap.String("format", loaded.Config.Format),
		zap.Int("parallel", loaded.Config.Parallel))
	return nil
}

func (o *globalOptions) cfg() *config.Configuration {
	return o.loaded.Config
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		clierrors.FprintError(stderr, clierrors.FromError(err))
	}
	return ExitCode(err)
}

// flagError marks cobra flag parsing failures as invalid arguments.
func flagError(cmd *cobra.Command, err error) error {
	return withExitCode(ExitInvalidArguments,
		clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(), "Run '"+cmd.CommandPath()+" --help' for usage"))
}
