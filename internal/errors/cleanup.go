// Package errors provides cleanup helpers and exit-code classification for
// rowcut errors.
package errors

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// Exit codes returned by the rowcut binary.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitFileAccess     = 3
	ExitColumnNotFound = 4
	ExitFormat         = 5
	ExitRangeOrder     = 6
)

// Coded is implemented by errors that map to a specific process exit code.
type Coded interface {
	error
	ExitCode() int
}

// ExitCode returns the exit code for err: ExitOK for nil, the code of the
// first Coded error in the chain, or ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return ExitFailure
}

// DeferClose properly closes an io.Closer with logging.
// Use this in defer statements to avoid suppressing close errors.
func DeferClose(logger zerolog.Logger, closer io.Closer, msg string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Err(err).Msg(msg)
	}
}
