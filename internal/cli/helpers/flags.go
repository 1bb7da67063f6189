package helpers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// AddReportFlag adds a standard --report/-r flag to a command.
// Validates that the format is in the supportedFormats list.
func AddReportFlag(cmd *cobra.Command, formatVar *string, defaultFormat OutputFormat, supportedFormats []OutputFormat) {
	formatNames := formatNames(supportedFormats)

	description := fmt.Sprintf("Report format (%s)", strings.Join(formatNames, ", "))
	cmd.Flags().StringVarP(formatVar, "report", "r", string(defaultFormat), description)

	// Add shell completion for report flag.
	_ = cmd.RegisterFlagCompletionFunc("report", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formatNames, cobra.ShellCompDirectiveNoFileComp
	})
}

// AddColumnFlag adds the --datetime-column/-c flag naming the column to filter on.
func AddColumnFlag(cmd *cobra.Command, columnVar *string) {
	cmd.Flags().StringVarP(columnVar, "datetime-column", "c", "", "Name of the datetime column (exact, case-sensitive)")
}

// ValidateFormat checks if the format is in the supported list.
func ValidateFormat(format string, supported []OutputFormat) error {
	for _, s := range supported {
		if format == string(s) {
			return nil
		}
	}

	return fmt.Errorf("unsupported report format %q, must be one of: %s",
		format, strings.Join(formatNames(supported), ", "))
}

func formatNames(formats []OutputFormat) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
