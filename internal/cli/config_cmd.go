package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/overcheck/internal/config"
	clierrors "github.com/ariel-frischer/overcheck/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage overcheck configuration",
		Long: `Inspect and manage overcheck configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (OVERCHECK_*)
  2. Project config (.overcheck/config.yml)
  3. User config (~/.config/overcheck/config.yml)
  4. Built-in defaults`,
		GroupID: groupConfig,
	}
	cmd.AddCommand(newConfigShowCmd(g), newConfigInitCmd(), newConfigMigrateCmd())
	return cmd
}

func newConfigShowCmd(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(g.cfg())
			}

			data, err := yaml.Marshal(g.cfg())
			if err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Runtime, "encoding configuration")
			}
			fmt.Fprint(out, string(data))

			dim := color.New(color.Faint).SprintFunc()
			fmt.Fprintf(out, "\n%s\n", color.New(color.Bold).Sprint("Configuration Sources:"))
			for _, key := range g.loaded.Keys() {
				fmt.Fprintf(out, "  %-28s %s\n", key, dim(string(g.loaded.Sources[key])))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var project, force, stdout bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write a commented default config file.

By default the user-level config (~/.config/overcheck/config.yml) is created.
Use --project to create .overcheck/config.yml in the current directory.
An existing file is left unchanged unless --force is given.`,
		Args: cobra.NoArgs,
		// Runs without loading config so a broken file can be replaced.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if stdout {
				fmt.Fprint(out, config.GetDefaultConfigTemplate())
				return nil
			}

			path := config.ProjectConfigPath()
			if !project {
				userPath, err := config.UserConfigPath()
				if err != nil {
					return clierrors.WrapWithMessage(err, clierrors.Runtime, "locating user config directory")
				}
				path = userPath
			}

			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s (use --force to overwrite)\n", path)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return clierrors.FileNotWritable(path, err)
			}
			if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
				return clierrors.FileNotWritable(path, err)
			}
			fmt.Fprintf(out, "%s Created %s\n", color.GreenString("✓"), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "create the project config instead of the user config")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the template instead of writing a file")
	return cmd
}

func newConfigMigrateCmd() *cobra.Command {
	var user, project, dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert legacy JSON config files to YAML",
		Args:  cobra.NoArgs,
		// Legacy files may not load cleanly, so skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !user && !project {
				user, project = true, true
			}

			var results []*config.MigrationResult
			if user {
				r, err := config.MigrateUserConfig(dryRun)
				if err != nil {
					return clierrors.WrapWithMessage(err, clierrors.Configuration, "migrating user config")
				}
				results = append(results, r)
			}
			if project {
				r, err := config.MigrateProjectConfig(dryRun)
				if err != nil {
					return clierrors.WrapWithMessage(err, clierrors.Configuration, "migrating project config")
				}
				results = append(results, r)
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintln(out, r.Message)
				if r.Success && !r.DryRun {
					if err := config.RemoveLegacyConfig(r.SourcePath, false); err != nil {
						return clierrors.WrapWithMessage(err, clierrors.Runtime, "backing up legacy config")
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "migrate only the user config")
	cmd.Flags().BoolVar(&project, "project", false, "migrate only the project config")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	return cmd
}
