// Package styled models renderer output as runs of text tagged with
// abstract styles. The renderer never emits escape codes itself; a style
// sheet (such as internal/ui/pretty) maps each Style to concrete terminal
// styling.
package styled

// PredefinedStyle identifies one of the renderer's built-in style roles.
type PredefinedStyle uint8

const (
	// Auto takes the emphasis of its surrounding context: primary or
	// secondary, resolved by the renderer at layout time.
	Auto PredefinedStyle = iota

	// SourceText is a quoted run of the caller's source.
	SourceText

	// LineNumber is the number in the line-number column.
	LineNumber

	// Separator is the bar between the line-number column and the source.
	Separator

	// Elision is the marker replacing a folded run of lines.
	Elision

	// Origin is the source name in a diagnostic header.
	Origin

	// Header is the message portion of a diagnostic header.
	Header

	// PrimaryUnderline marks primary annotation carets and brackets.
	PrimaryUnderline

	// SecondaryUnderline marks secondary annotation dashes and brackets.
	SecondaryUnderline

	// PrimaryLabel is the label text of a primary annotation.
	PrimaryLabel

	// SecondaryLabel is the label text of a secondary annotation.
	SecondaryLabel

	// Addition marks inserted text in a rendered patch.
	Addition

	// Deletion marks removed text in a rendered patch.
	Deletion

	// Replacement marks replaced text in an inline-rendered patch.
	Replacement

	// SeverityError, SeverityWarning and SeverityInfo style the severity
	// word of a diagnostic header.
	SeverityError
	SeverityWarning
	SeverityInfo
)

// Style is either a predefined style or a caller-defined custom slot that a
// style sheet may map to anything it likes. The zero value is Auto.
type Style struct {
	predef   PredefinedStyle
	custom   uint8
	isCustom bool
}

// Style converts a predefined style into a Style value.
func (p PredefinedStyle) Style() Style {
	return Style{predef: p}
}

// CustomStyle returns the custom style for the given slot.
func CustomStyle(slot uint8) Style {
	return Style{custom: slot, isCustom: true}
}

// Predef reports the predefined style, if this is one.
func (s Style) Predef() (PredefinedStyle, bool) {
	if s.isCustom {
		return 0, false
	}
	return s.predef, true
}

// CustomSlot reports the custom slot, if this is a custom style.
func (s Style) CustomSlot() (uint8, bool) {
	if !s.isCustom {
		return 0, false
	}
	return s.custom, true
}

// IsAuto reports whether the style is the context-resolved Auto style.
func (s Style) IsAuto() bool {
	return !s.isCustom && s.predef == Auto
}

// Resolve replaces Auto with the given context style.
func (s Style) Resolve(context Style) Style {
	if s.IsAuto() {
		return context
	}
	return s
}
