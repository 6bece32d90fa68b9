package diag

import (
	"github.com/yaklabco/annotate/pkg/annotate"
	"github.com/yaklabco/annotate/pkg/styled"
)

// Diagnostic is one complete message: a header plus any number of
// annotated sources rendered beneath it.
type Diagnostic struct {
	// Severity selects the header keyword and its style.
	Severity Severity

	// Code is an optional machine-readable identifier shown in brackets
	// after the severity, for example "E0308".
	Code string

	// Message is the headline text.
	Message styled.Text

	// Sources are rendered in order below the header.
	Sources []*annotate.Source
}

// New starts a diagnostic with a plain-text message.
func New(severity Severity, message string) *Diagnostic {
	return &Diagnostic{Severity: severity, Message: styled.Plain(message)}
}

// WithCode sets the diagnostic code and returns the diagnostic.
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithMessage replaces the headline with styled text and returns the
// diagnostic.
func (d *Diagnostic) WithMessage(message styled.Text) *Diagnostic {
	d.Message = message
	return d
}

// AddSource appends an annotated source and returns the diagnostic.
func (d *Diagnostic) AddSource(src *annotate.Source) *Diagnostic {
	d.Sources = append(d.Sources, src)
	return d
}
