package config

import (
	"fmt"
	"io"
	"os"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
)

// Exit codes used by command entrypoints.
const (
	ExitFailure = 1
	// ExitInvalidInput reports a request the domain rejected.
	ExitInvalidInput = 2
)

// ExitCode maps err to a process exit code: 0 for nil, ExitInvalidInput for
// coded domain errors, ExitFailure otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case apperrors.GetCode(err) != apperrors.CodeUnknown:
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}

// Exit writes err to stderr and exits with ExitCode(err). A nil err returns.
func Exit(err error) {
	if err == nil {
		return
	}
	writeError(os.Stderr, err)
	os.Exit(ExitCode(err))
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(ExitFailure)
}

func writeError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
