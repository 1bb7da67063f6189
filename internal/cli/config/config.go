// Package config implements the 'rowcut config' command family.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/rowcut/internal/cli/helpers"
	"github.com/coral-mesh/rowcut/internal/config"
	"github.com/coral-mesh/rowcut/internal/constants"
	"github.com/coral-mesh/rowcut/internal/logging"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd(g *helpers.Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize rowcut configuration",
		Long: `Inspect and initialize rowcut configuration.

Configuration Priority:
  1. Command-line flags (highest)
  2. ROWCUT_* environment variables
  3. Config file (--config, $ROWCUT_CONFIG or ~/.rowcut/config.yaml)
  4. Built-in defaults

Environment Variables:
  ROWCUT_CONFIG         Config file path
  ROWCUT_LOG_LEVEL      Log level
  ROWCUT_LOG_FORMAT     Log format (auto, pretty, json)
  ROWCUT_DELIMITER      Field delimiter
  ROWCUT_MAX_FILE_SIZE  Largest input accepted, in bytes
  ROWCUT_SAMPLE_SIZE    Values checked during auto-detection
  ROWCUT_BACKUP_SUFFIX  Backup file suffix
  ROWCUT_PREVIEW_ROWS   Deleted rows listed in the report
  ROWCUT_REPORT         Default report format`,
	}

	cmd.AddCommand(newViewCmd(g))
	cmd.AddCommand(newPathCmd(g))
	cmd.AddCommand(newInitCmd(g))
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// newViewCmd creates the 'config view' command.
func newViewCmd(g *helpers.Globals) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		Long: `Display the configuration after defaults, the config file and environment
variables are merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, viewFormats); err != nil {
				return err
			}
			cfg, err := g.LoadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == string(helpers.FormatYAML) {
				path := config.NewLoader(g.ConfigPath).Path()
				if path == "" {
					path = "none"
				}
				if _, err := fmt.Fprintf(out, "# Config file: %s\n", path); err != nil {
					return err
				}
			}

			formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
			if err != nil {
				return err
			}
			return formatter.Format(cfg, out)
		},
	}

	helpers.AddReportFlag(cmd, &format, helpers.FormatYAML, viewFormats)

	return cmd
}

var viewFormats = []helpers.OutputFormat{helpers.FormatYAML, helpers.FormatJSON}

// newPathCmd creates the 'config path' command.
func newPathCmd(g *helpers.Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.NewLoader(g.ConfigPath).Path()
			if path == "" {
				return fmt.Errorf("no config path: home directory is unknown and %s is not set", constants.ConfigPathEnv)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

// newInitCmd creates the 'config init' command.
func newInitCmd(g *helpers.Globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(g.ConfigPath)
			path := loader.Path()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			logger := logging.New(logging.Config{Level: "disabled"})
			if err := loader.Save(config.Default(), logger); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

// newSchemaCmd creates the 'config schema' command.
func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
