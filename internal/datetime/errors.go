package datetime

import (
	"errors"
	"fmt"
	"strings"

	rcerrors "github.com/coral-mesh/rowcut/internal/errors"
)

var (
	// ErrUnsupportedFormat is returned when a format string uses a directive
	// or literal text that cannot be parsed.
	ErrUnsupportedFormat = errors.New("unsupported datetime format")

	// ErrNoMatch is returned when auto-detection exhausts every candidate.
	ErrNoMatch = errors.New("no candidate format matched")

	// ErrNoValues is returned when there is nothing to detect a format from.
	ErrNoValues = errors.New("no non-empty values")

	// ErrEmptyBound is returned when a range boundary is blank.
	ErrEmptyBound = errors.New("range boundary is empty")

	// ErrNoParsableValues is returned when a column has values but none of
	// them converts under the resolved pattern.
	ErrNoParsableValues = errors.New("no value in the column could be parsed")
)

// FormatError reports a format that does not fit the values it was applied to.
//
// For an explicit format, Format and Value name the format and the first value
// that failed. For auto-detection, Attempted lists every candidate tried and
// Samples holds some of the values that were checked.
type FormatError struct {
	Format    string
	Value     string
	Attempted []string
	Samples   []string
	Err       error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnsupportedFormat):
		return fmt.Sprintf("invalid format %q: %v", e.Format, e.Err)
	case errors.Is(e.Err, ErrEmptyBound):
		return e.Err.Error()
	case errors.Is(e.Err, ErrNoValues), errors.Is(e.Err, ErrNoParsableValues):
		if e.Format != "" {
			return fmt.Sprintf("%v (format %q)", e.Err, e.Format)
		}
		return e.Err.Error()
	case errors.Is(e.Err, ErrNoMatch):
		return fmt.Sprintf("could not detect a datetime format: tried %s against values %s",
			strings.Join(e.Attempted, ", "), quoteAll(e.Samples))
	default:
		msg := fmt.Sprintf("value %q does not match format %q", e.Value, e.Format)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	}
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// ExitCode implements rcerrors.Coded.
func (e *FormatError) ExitCode() int {
	return rcerrors.ExitFormat
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
