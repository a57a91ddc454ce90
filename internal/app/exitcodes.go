package app

import (
	"context"
	"errors"

	"calib/internal/config"
	"calib/internal/document"
)

// Exit codes. 0-2 follow Unix convention, 3+ are calib specific.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitUsageError      = 2   // bad flags, missing --cal-doc, invalid config
	ExitOutputError     = 3   // writing results failed
	ExitDocNotFound     = 4   // a calibration document does not exist
	ExitDocUnreadable   = 5   // a calibration document could not be read
	ExitInvalidEncoding = 6   // a calibration document is not UTF-8
	ExitInterrupted     = 130 // SIGINT/SIGTERM
)

var (
	errUsage  = errors.New("usage")
	errOutput = errors.New("write output")
)

// ExitCodeForError returns the exit code for err; nil maps to ExitSuccess.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, errUsage), errors.Is(err, config.ErrInvalid), errors.Is(err, config.ErrConfigNotFound):
		return ExitUsageError
	case errors.Is(err, errOutput):
		return ExitOutputError
	case errors.Is(err, document.ErrNotFound):
		return ExitDocNotFound
	case errors.Is(err, document.ErrUnreadable):
		return ExitDocUnreadable
	case errors.Is(err, document.ErrInvalidEncoding):
		return ExitInvalidEncoding
	}
	return ExitGeneralError
}
