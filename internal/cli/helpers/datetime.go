package helpers

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// RangeFlags holds the flag values describing the datetime range to delete.
type RangeFlags struct {
	Start  string
	End    string
	Format string
}

// AddFlags adds range flags to a FlagSet. --datetime-format is kept as a
// hidden alias of --format.
func (f *RangeFlags) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&f.Start, "start-date", "s", "", "Start of the range to delete, inclusive")
	flags.StringVarP(&f.End, "end-date", "e", "", "End of the range to delete, inclusive")
	AddFormatFlag(flags, &f.Format)
}

// AddFormatFlag adds the --format/-f datetime format flag and its hidden
// --datetime-format alias to a FlagSet.
func AddFormatFlag(flags *pflag.FlagSet, formatVar *string) {
	flags.StringVarP(formatVar, "format", "f", "", "strftime-style datetime format (e.g. %Y-%m-%d); auto-detected when omitted")
	flags.StringVar(formatVar, "datetime-format", "", "Alias of --format")
	_ = flags.MarkHidden("datetime-format")
}

// Validate checks that both range bounds were given.
func (f *RangeFlags) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Start) == "" {
		missing = append(missing, "--start-date")
	}
	if strings.TrimSpace(f.End) == "" {
		missing = append(missing, "--end-date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
	}
	return nil
}
