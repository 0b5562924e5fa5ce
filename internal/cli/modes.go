package cli

import (
	"fmt"

	"github.com/ariel-frischer/overcheck/internal/override"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var modeDescriptions = map[override.Mode]string{
	override.ModeRecent:  "check overrides against the nearest ancestor",
	override.ModeTopmost: "check overrides against the most distant ancestor below the root",
}

func newModesCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "modes",
		Short:   "List resolution modes",
		GroupID: groupVerify,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := override.ParseMode(g.cfg().Mode)
			if err != nil {
				current = override.DefaultMode
			}

			bold := color.New(color.Bold).SprintFunc()
			green := color.New(color.FgGreen).SprintFunc()
			out := cmd.OutOrStdout()
			for _, m := range override.ValidModes {
				marker := "  "
				if m == current {
					marker = green("* ")
				}
				fmt.Fprintf(out, "%s%-8s %s\n", marker, bold(m.String()), modeDescriptions[m])
			}
			return nil
		},
	}
}
