// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Rendering fields.
	FieldOrigin      = "origin"
	FieldSources     = "sources"
	FieldDiagnostics = "diagnostics"
	FieldSpans       = "spans"
	FieldPatches     = "patches"
	FieldRows        = "rows"
	FieldColor       = "color"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
