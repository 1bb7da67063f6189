package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/rowcut/internal/cli/helpers"
	"github.com/coral-mesh/rowcut/internal/datetime"
)

// exampleTime is rendered with every candidate in 'rowcut formats'.
var exampleTime = time.Date(2023, time.January, 31, 14, 5, 9, 0, time.UTC)

type formatRow struct {
	Order   int    `json:"order" yaml:"order" header:"#"`
	Name    string `json:"name" yaml:"name" header:"NAME"`
	Format  string `json:"format" yaml:"format" header:"FORMAT"`
	Example string `json:"example" yaml:"example" header:"EXAMPLE"`
}

func newFormatsCmd(g *helpers.Globals) *cobra.Command {
	var report string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the auto-detection candidates in the order they are tried",
		Long: `List the datetime formats tried during auto-detection, in order. The
first candidate that parses every sampled value wins.

The list can be replaced with detect.candidates in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("report") {
				cfg.Output.Report = report
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			candidates, err := cfg.Detect.Patterns()
			if err != nil {
				return err
			}
			rows := candidateRows(datetime.NewResolver(candidates).Candidates())

			formatter, err := helpers.NewFormatter(helpers.OutputFormat(cfg.Output.Report))
			if err != nil {
				return err
			}
			return formatter.Format(rows, cmd.OutOrStdout())
		},
	}

	helpers.AddReportFlag(cmd, &report, helpers.FormatTable, helpers.AllFormats)

	return cmd
}

func candidateRows(candidates []datetime.Pattern) []formatRow {
	rows := make([]formatRow, len(candidates))
	for i, p := range candidates {
		rows[i] = formatRow{
			Order:   i + 1,
			Name:    p.Name,
			Format:  p.Format,
			Example: p.Render(exampleTime),
		}
	}
	return rows
}
