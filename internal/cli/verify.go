package cli

import (
	"github.com/ariel-frischer/overcheck/internal/check"
	clierrors "github.com/ariel-frischer/overcheck/internal/errors"
	"github.com/ariel-frischer/overcheck/internal/override"
	"github.com/ariel-frischer/overcheck/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verifyFlags are shared by verify and watch.
type verifyFlags struct {
	mode          string
	allowMultiple bool
	format        string
	parallel      int
}

func (f *verifyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "resolution mode: recent or topmost (default from config)")
	cmd.Flags().BoolVar(&f.allowMultiple, "allow-multiple-inheritance", false, "verify multi-base classes using their C3 order")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: text, json, yaml (default from config)")
}

// resolve merges flags over the loaded configuration. Only flags the user
// actually set take precedence.
func (f *verifyFlags) resolve(cmd *cobra.Command, g *globalOptions) (check.Options, report.Format, error) {
	cfg := g.cfg()

	modeName := cfg.Mode
	if cmd.Flags().Changed("mode") {
		modeName = f.mode
	}
	mode, err := override.ParseMode(modeName)
	if err != nil {
		return check.Options{}, "", withExitCode(ExitInvalidArguments, clierrors.InvalidMode(modeName))
	}

	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName = f.format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return check.Options{}, "", withExitCode(ExitInvalidArguments, clierrors.InvalidFormat(formatName))
	}

	parallel := cfg.Parallel
	if cmd.Flags().Changed("parallel") {
		if f.parallel < 1 {
			return check.Options{}, "", withExitCode(ExitInvalidArguments,
				clierrors.NewArgumentError("--parallel must be at least 1"))
		}
		parallel = f.parallel
	}

	allowMultiple := cfg.AllowMultipleInheritance
	if cmd.Flags().Changed("allow-multiple-inheritance") {
		allowMultiple = f.allowMultiple
	}

	return check.Options{
		Mode:                     mode,
		AllowMultipleInheritance: allowMultiple,
		Parallel:                 parallel,
		Logger:                   g.logger,
	}, format, nil
}

func newVerifyCmd(g *globalOptions) *cobra.Command {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:     "verify <file>...",
		Aliases: []string{"check"},
		Short:   "Verify override declarations in one or more files",
		Long: `Verify every class in the given declaration files.

A class is verified when it declares bases (or sets 'verify: true').
Each method marked 'override: true' must exist on the authoritative
ancestor. Properties that redefine only some accessors inherit the
missing setter, deleter and doc from the ancestor's property.

Exit codes:
  0  every class verified
  1  at least one class or file failed
  3  invalid arguments or configuration`,
		Example: `  overcheck verify classes.yaml
  overcheck verify --mode topmost *.yaml
  overcheck verify --format json --parallel 8 decls/*.yaml`,
		GroupID: groupVerify,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return withExitCode(ExitInvalidArguments, clierrors.MissingDeclarationFiles())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, format, err := flags.resolve(cmd, g)
			if err != nil {
				return err
			}

			results, err := check.Paths(cmd.Context(), args, opts)
			if err != nil {
				return withExitCode(ExitInvalidArguments, clierrors.FromError(err))
			}

			if err := report.Render(cmd.OutOrStdout(), format, results); err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering report")
			}

			summary := report.Summarize(results)
			g.logger.Info("verification finished",
				zap.Int("files", summary.Files),
				zap.Int("classes", summary.Classes),
				zap.Int("failed", summary.Failed))
			if summary.Failed > 0 {
				return withExitCode(ExitVerificationFailed, clierrors.VerificationFailed(summary.Failed))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&flags.parallel, "parallel", "p", check.DefaultParallel, "number of files verified concurrently (default from config)")
	return cmd
}
