package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/rowcut/internal/cli/helpers"
	"github.com/coral-mesh/rowcut/internal/prune"
)

func newDetectCmd(g *helpers.Globals) *cobra.Command {
	var (
		column     string
		format     string
		delimiter  string
		sampleSize int
		report     string
	)

	cmd := &cobra.Command{
		Use:   "detect <input_file> -c COLUMN",
		Short: "Show the datetime format resolved for a column",
		Long: `Resolve the datetime format of a column the same way a prune run does,
then convert every value to report the data range and any value that
would be kept because it does not parse. Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.LoadConfig()
			if err != nil {
				return err
			}
			applyInputFlags(cmd.Flags(), cfg, delimiter, sampleSize)
			if cmd.Flags().Changed("report") {
				cfg.Output.Report = report
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts, err := baseOptions(cfg, args[0], column, format)
			if err != nil {
				return err
			}

			detection, err := prune.NewRunner(g.Logger(cfg)).Detect(opts)
			if err != nil {
				return err
			}
			return writeDetection(cmd.OutOrStdout(), detection, helpers.OutputFormat(cfg.Output.Report))
		},
	}

	helpers.AddColumnFlag(cmd, &column)
	helpers.AddFormatFlag(cmd.Flags(), &format)
	addInputFlags(cmd.Flags(), &delimiter, &sampleSize)
	helpers.AddReportFlag(cmd, &report, helpers.FormatTable, helpers.AllFormats)
	_ = cmd.MarkFlagRequired("datetime-column")

	return cmd
}

func writeDetection(w io.Writer, d *prune.Detection, format helpers.OutputFormat) error {
	switch format {
	case helpers.FormatTable:
		st := helpers.NewStyler(w)
		if _, err := fmt.Fprintln(w, st.Heading("Detection")); err != nil {
			return err
		}
		if err := (&helpers.TableFormatter{}).Format(d.Fields(), w); err != nil {
			return err
		}
		if d.ParseFailures > 0 {
			line := fmt.Sprintf("%d values do not parse, e.g. %q", d.ParseFailures, d.FailureSamples[0])
			if _, err := fmt.Fprintf(w, "\n%s\n", st.Warn(line)); err != nil {
				return err
			}
		}
		return nil
	case helpers.FormatCSV:
		return (&helpers.CSVFormatter{}).Format(d.Fields(), w)
	default:
		formatter, err := helpers.NewFormatter(format)
		if err != nil {
			return err
		}
		return formatter.Format(d, w)
	}
}
