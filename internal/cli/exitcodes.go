package cli

import "github.com/yaklabco/annotate/pkg/diag"

// Exit codes for annotate.
const (
	// ExitSuccess indicates successful execution with no error diagnostics.
	ExitSuccess = 0

	// ExitErrors indicates rendering completed but error diagnostics were present.
	ExitErrors = 1

	// ExitWarnings indicates warning diagnostics were present (when strict mode).
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitInputError indicates a malformed diagnostics document.
	ExitInputError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromDiagnostics determines the exit code from the rendered
// diagnostics and strict mode.
func ExitCodeFromDiagnostics(ds []*diag.Diagnostic, strict bool) int {
	var errors, warnings int
	for _, d := range ds {
		switch d.Severity {
		case diag.Error:
			errors++
		case diag.Warning:
			warnings++
		}
	}

	if errors > 0 {
		return ExitErrors
	}

	if strict && warnings > 0 {
		return ExitWarnings
	}

	return ExitSuccess
}
