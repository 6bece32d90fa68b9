// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/yaklabco/annotate/pkg/styled"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Diagram components
	SourceText         lipgloss.Style
	LineNumber         lipgloss.Style
	Separator          lipgloss.Style
	Elision            lipgloss.Style
	Origin             lipgloss.Style
	Header             lipgloss.Style
	PrimaryUnderline   lipgloss.Style
	SecondaryUnderline lipgloss.Style
	PrimaryLabel       lipgloss.Style
	SecondaryLabel     lipgloss.Style

	// Patch styles
	Addition    lipgloss.Style
	Deletion    lipgloss.Style
	Replacement lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	colorEnabled bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return &Styles{}
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		// Severity colors
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		// Diagram components
		SourceText:         lipgloss.NewStyle(),
		LineNumber:         lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Separator:          lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Elision:            lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Origin:             lipgloss.NewStyle().Bold(true),
		Header:             lipgloss.NewStyle().Bold(true),
		PrimaryUnderline:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		SecondaryUnderline: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		PrimaryLabel:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		SecondaryLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),

		// Patch styles
		Addition:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Deletion:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Replacement: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		// Misc
		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),

		colorEnabled: true,
	}
}

// For maps a display style to its Lipgloss renderer. Custom styles map
// straight onto the ANSI 256 palette.
func (s *Styles) For(style styled.Style) lipgloss.Style {
	if !s.colorEnabled {
		return lipgloss.NewStyle()
	}
	if slot, ok := style.CustomSlot(); ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(slot))))
	}
	predef, _ := style.Predef()
	switch predef {
	case styled.LineNumber:
		return s.LineNumber
	case styled.Separator:
		return s.Separator
	case styled.Elision:
		return s.Elision
	case styled.Origin:
		return s.Origin
	case styled.Header:
		return s.Header
	case styled.PrimaryUnderline:
		return s.PrimaryUnderline
	case styled.SecondaryUnderline:
		return s.SecondaryUnderline
	case styled.PrimaryLabel:
		return s.PrimaryLabel
	case styled.SecondaryLabel:
		return s.SecondaryLabel
	case styled.Addition:
		return s.Addition
	case styled.Deletion:
		return s.Deletion
	case styled.Replacement:
		return s.Replacement
	case styled.SeverityError:
		return s.Error
	case styled.SeverityWarning:
		return s.Warning
	case styled.SeverityInfo:
		return s.Info
	default:
		return s.SourceText
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Check if output is a TTY
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
