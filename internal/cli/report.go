package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/coral-mesh/rowcut/internal/cli/helpers"
	"github.com/coral-mesh/rowcut/internal/prune"
)

// writeReport renders a prune report. Structured formats carry the whole
// report; csv carries the summary fields only.
func writeReport(w io.Writer, report *prune.Report, format helpers.OutputFormat) error {
	switch format {
	case helpers.FormatTable:
		return writeReportTable(w, report)
	case helpers.FormatCSV:
		return (&helpers.CSVFormatter{}).Format(report.Fields(), w)
	default:
		formatter, err := helpers.NewFormatter(format)
		if err != nil {
			return err
		}
		return formatter.Format(report, w)
	}
}

func writeReportTable(w io.Writer, report *prune.Report) error {
	st := helpers.NewStyler(w)
	table := &helpers.TableFormatter{}

	title := "Summary"
	if report.DryRun {
		title = "Summary (dry run)"
	}
	if _, err := fmt.Fprintln(w, st.Heading(title)); err != nil {
		return err
	}
	if err := table.Format(report.Fields(), w); err != nil {
		return err
	}

	if len(report.Preview) > 0 {
		verb := "Deleted"
		if report.DryRun {
			verb = "Would delete"
		}
		heading := fmt.Sprintf("%s (%d of %d rows)", verb, len(report.Preview), report.Deleted)
		if _, err := fmt.Fprintf(w, "\n%s\n", st.Heading(heading)); err != nil {
			return err
		}
		if err := table.Format(report.Preview, w); err != nil {
			return err
		}
	}

	if report.ParseFailures > 0 {
		quoted := make([]string, len(report.FailureSamples))
		for i, v := range report.FailureSamples {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		line := fmt.Sprintf("%d rows kept because their value did not parse as %s: %s",
			report.ParseFailures, report.Pattern, strings.Join(quoted, ", "))
		if _, err := fmt.Fprintf(w, "\n%s\n", st.Warn(line)); err != nil {
			return err
		}
	}

	if report.Deleted == 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", st.Hint("No rows fall within the range.")); err != nil {
			return err
		}
	}

	return nil
}
