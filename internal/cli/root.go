package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configcmd "github.com/coral-mesh/rowcut/internal/cli/config"
	"github.com/coral-mesh/rowcut/internal/cli/helpers"
	"github.com/coral-mesh/rowcut/pkg/version"
)

// NewRootCmd creates the rowcut command tree. The root command itself runs
// a prune.
func NewRootCmd() *cobra.Command {
	g := &helpers.Globals{}
	f := &pruneFlags{}

	cmd := &cobra.Command{
		Use:   "rowcut <input_file> -c COLUMN -s START -e END",
		Short: "Delete rows of a CSV file whose datetime falls in a range",
		Long: `Delete every row of a delimited file whose datetime column falls within
an inclusive [start, end] range, preserving the header, column order and
the order of the remaining rows.

The datetime format is auto-detected from the column unless --format is
given. Candidates are tried in order (see 'rowcut formats'); MM/DD/YYYY is
tried before DD/MM/YYYY. Rows whose value is empty or does not parse are
always kept and counted in the report.

The range bounds use the same format as the column when they fit it.

Examples:
  # Delete January 2023, overwriting data.csv
  rowcut data.csv -c timestamp -s 2023-01-01 -e 2023-01-31

  # Preview the deletion without writing anything
  rowcut data.csv -c timestamp -s 2023-01-01 -e 2023-01-31 --dry-run

  # Keep a backup and write the result elsewhere
  rowcut data.csv -c when -s 01/01/2023 -e 31/01/2023 -f %d/%m/%Y --backup -o out.csv

Exit codes:
  0  success (including nothing deleted)
  1  usage or unexpected error
  3  input unreadable or output unwritable
  4  column not found
  5  datetime format error
  6  start is after end`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(cmd, g, f, args[0])
		},
	}

	g.AddFlags(cmd.PersistentFlags())
	f.addFlags(cmd)

	// Add subcommands
	cmd.AddCommand(newDetectCmd(g))
	cmd.AddCommand(newFormatsCmd(g))
	cmd.AddCommand(configcmd.NewConfigCmd(g))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != string(helpers.FormatTable) {
				formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
				if err != nil {
					return err
				}
				return formatter.Format(version.Get(), cmd.OutOrStdout())
			}
			info := version.Get()
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "rowcut version %s\n", info.Version)
			_, _ = fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			_, _ = fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			_, _ = fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			return nil
		},
	}

	helpers.AddReportFlag(cmd, &format, helpers.FormatTable, []helpers.OutputFormat{
		helpers.FormatTable,
		helpers.FormatJSON,
		helpers.FormatYAML,
	})

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
