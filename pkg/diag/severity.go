package diag

import "github.com/yaklabco/annotate/pkg/styled"

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	// Info is advisory output that requires no action.
	Info Severity = iota
	// Warning flags something suspect that does not block.
	Warning
	// Error flags something that must be fixed.
	Error
)

// String returns the lowercase name used in rendered headers.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Style returns the display style for the severity keyword.
func (s Severity) Style() styled.Style {
	switch s {
	case Warning:
		return styled.SeverityWarning.Style()
	case Error:
		return styled.SeverityError.Style()
	default:
		return styled.SeverityInfo.Style()
	}
}
