package config

import (
	"fmt"
	"strings"

	"github.com/coral-mesh/rowcut/internal/datetime"
	"github.com/coral-mesh/rowcut/internal/table"
)

// Log formats.
const (
	LogFormatAuto   = "auto"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "off", "quiet"}
	validLogFormats = []string{LogFormatAuto, LogFormatPretty, LogFormatJSON}
	validReports    = []string{"table", "json", "yaml", "csv"}
)

// Validator is the interface for validating configuration.
type Validator interface {
	Validate() error
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiValidationError represents multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("validation failed with %d errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		builder.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

// Validate validates Config.
func (c *Config) Validate() error {
	var errors []ValidationError

	if c.Version != "" && c.Version != SchemaVersion {
		errors = append(errors, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %q, expected %q", c.Version, SchemaVersion),
		})
	}

	if !oneOf(strings.ToLower(c.Log.Level), validLogLevels) {
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of %s", strings.Join(validLogLevels[:5], ", ")),
		})
	}

	if !oneOf(c.Log.Format, validLogFormats) {
		errors = append(errors, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be one of %s", strings.Join(validLogFormats, ", ")),
		})
	}

	if _, err := table.ParseComma(c.Input.Delimiter); err != nil {
		errors = append(errors, ValidationError{
			Field:   "input.delimiter",
			Message: err.Error(),
		})
	}

	if c.Input.MaxFileSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "input.max_file_size",
			Message: "max file size must be positive",
		})
	}

	if c.Detect.SampleSize < 0 {
		errors = append(errors, ValidationError{
			Field:   "detect.sample_size",
			Message: "sample size cannot be negative",
		})
	}

	for i, cand := range c.Detect.Candidates {
		if _, err := datetime.Compile(cand.Name, cand.Format); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("detect.candidates[%d].format", i),
				Message: err.Error(),
			})
		}
	}

	if c.Output.BackupSuffix == "" {
		errors = append(errors, ValidationError{
			Field:   "output.backup_suffix",
			Message: "backup suffix is required",
		})
	} else if strings.ContainsAny(c.Output.BackupSuffix, `/\`) {
		errors = append(errors, ValidationError{
			Field:   "output.backup_suffix",
			Message: "backup suffix cannot contain path separators",
		})
	}

	if !oneOf(c.Output.Report, validReports) {
		errors = append(errors, ValidationError{
			Field:   "output.report",
			Message: fmt.Sprintf("must be one of %s", strings.Join(validReports, ", ")),
		})
	}

	if len(errors) > 0 {
		return &MultiValidationError{Errors: errors}
	}

	return nil
}

// Patterns compiles the configured candidate list. It returns nil when no
// candidates are configured so callers fall back to the built-in list.
func (d DetectConfig) Patterns() ([]datetime.Pattern, error) {
	if len(d.Candidates) == 0 {
		return nil, nil
	}
	patterns := make([]datetime.Pattern, 0, len(d.Candidates))
	for _, cand := range d.Candidates {
		p, err := datetime.Compile(cand.Name, cand.Format)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Comma returns the configured delimiter, or zero to select by extension.
func (i InputConfig) Comma() (rune, error) {
	return table.ParseComma(i.Delimiter)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
