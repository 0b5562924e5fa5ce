package cli

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/overcheck/internal/check"
	clierrors "github.com/ariel-frischer/overcheck/internal/errors"
	"github.com/ariel-frischer/overcheck/internal/report"
	"github.com/ariel-frischer/overcheck/internal/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	flags := &verifyFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-verify a declaration file whenever it changes",
		Long: `Verify a declaration file, then keep watching it and verify again after
every save. Press Ctrl+C to stop.`,
		Example: `  overcheck watch classes.yaml
  overcheck watch --mode topmost --debounce 500ms classes.yaml`,
		GroupID: groupVerify,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return withExitCode(ExitInvalidArguments, clierrors.NewArgumentErrorWithUsage(
					fmt.Sprintf("watch takes exactly one declaration file, got %d", len(args)),
					"overcheck watch <file>"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, format, err := flags.resolve(cmd, g)
			if err != nil {
				return err
			}

			w, err := watch.New(args[0], watch.WithDebounce(debounce), watch.WithLogger(g.logger))
			if err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Runtime, "starting watcher")
			}
			defer w.Close()

			out := cmd.OutOrStdout()
			header := color.New(color.FgMagenta, color.Faint).SprintFunc()
			runs := 0
			return w.Run(cmd.Context(), func() {
				runs++
				fmt.Fprintf(out, "%s\n", header(fmt.Sprintf("── run %d · %s ──", runs, time.Now().Format("15:04:05"))))
				result := check.Path(args[0], opts)
				if err := report.Render(out, format, []report.FileResult{result}); err != nil {
					g.logger.Error("rendering report", zap.Error(err))
				}
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period after a change before re-verifying")
	return cmd
}
