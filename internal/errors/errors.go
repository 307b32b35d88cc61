package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/storage"
	"github.com/julianstephens/diacare/internal/validation"
)

// Exit codes returned by Fatal.
const (
	ExitFailure     = 1
	ExitInvalid     = 2
	ExitUnavailable = 3
)

const unavailableHint = "Run 'diacare doctor' to check your data store."

// Format renders err for the terminal with an "Error: " prefix. Validation
// failures are shown without their wrapping context, and storage outages get
// a hint pointing at the doctor command.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var invalid *validation.Error
	if stderrors.As(err, &invalid) {
		return fmt.Sprintf("Error: %v", invalid)
	}
	if stderrors.Is(err, storage.ErrUnavailable) {
		return fmt.Sprintf("Error: %v\n%s", err, unavailableHint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	var invalid *validation.Error
	switch {
	case err == nil:
		return 0
	case stderrors.As(err, &invalid):
		return ExitInvalid
	case stderrors.Is(err, storage.ErrUnavailable):
		return ExitUnavailable
	default:
		return ExitFailure
	}
}

// Fatal logs an error and exits the program with the status from ExitCode
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(ExitFailure)
}
