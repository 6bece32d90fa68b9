// Package render lays out annotated sources as line-by-line diagrams:
// numbered source excerpts with underlines, nested multi-line brackets,
// label placement, folding of long spans, and suggested-fix patches as
// inline markers or unified diffs. Output is styled text; mapping styles to
// terminal colors is a style sheet's job (see internal/ui/pretty).
package render

// LabelPosition controls which annotation's label sits nearest the
// underline row when several labels collide on one line.
type LabelPosition uint8

const (
	// LabelRight keeps later/right-most annotations' labels nearest the
	// underline.
	LabelRight LabelPosition = iota

	// LabelLeft keeps earlier/left-most annotations' labels nearest the
	// underline.
	LabelLeft
)

// Alignment controls justification of numbers in the line-number column.
type Alignment uint8

const (
	// AlignRight right-justifies line numbers.
	AlignRight Alignment = iota

	// AlignLeft left-justifies line numbers.
	AlignLeft
)

// PatchNumbering selects how diff rows of rendered patches are numbered.
type PatchNumbering uint8

const (
	// AfterPatch assigns `+` row numbers sequentially as the edited output
	// is produced; insertions get the next unused number.
	AfterPatch PatchNumbering = iota

	// BeforePatch numbers `+` rows by the position of the edit that
	// produced them, which can make insertion numbers appear out of order
	// relative to surrounding `-` rows. That is intentional.
	BeforePatch
)

// Options configures the layout engine and patch renderer.
type Options struct {
	// PrimaryUnderline and SecondaryUnderline are the characters used for
	// primary and secondary annotations. Defaults: '^' and '-'.
	PrimaryUnderline   rune
	SecondaryUnderline rune

	// LabelPosition orders collided label rows. Default: LabelRight.
	LabelPosition LabelPosition

	// MaxMultilineLines is the most lines a multi-line annotation shows
	// before its interior is folded. Default: 5.
	MaxMultilineLines int

	// MaxUnannotatedLines is the longest run of unannotated lines shown in
	// full between displayed lines; longer runs collapse into one elision
	// row. Default: 2.
	MaxUnannotatedLines int

	// TabWidth is the display width of a tab stop. Default: 4.
	TabWidth int

	// LineNumAlignment justifies the line-number column. Default: AlignRight.
	LineNumAlignment Alignment

	// MaxInlineReplacementLength is the largest total replacement text, in
	// bytes, for which same-line patches render inline instead of as a
	// diff. Default: 16.
	MaxInlineReplacementLength int

	// PatchNumbering selects diff row numbering. Default: AfterPatch.
	PatchNumbering PatchNumbering

	// LineNumWidth fixes the width of the line-number column. Zero derives
	// it from the largest displayed line number. The assembler sets this
	// so every source in one render pass aligns consistently.
	LineNumWidth int
}

// DefaultOptions returns the options used when a zero value is supplied.
func DefaultOptions() Options {
	return Options{
		PrimaryUnderline:           '^',
		SecondaryUnderline:         '-',
		LabelPosition:              LabelRight,
		MaxMultilineLines:          5,
		MaxUnannotatedLines:        2,
		TabWidth:                   4,
		LineNumAlignment:           AlignRight,
		MaxInlineReplacementLength: 16,
		PatchNumbering:             AfterPatch,
	}
}

// withDefaults fills zero-valued fields so callers can set only what they
// care about.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PrimaryUnderline == 0 {
		o.PrimaryUnderline = d.PrimaryUnderline
	}
	if o.SecondaryUnderline == 0 {
		o.SecondaryUnderline = d.SecondaryUnderline
	}
	if o.MaxMultilineLines == 0 {
		o.MaxMultilineLines = d.MaxMultilineLines
	}
	if o.MaxUnannotatedLines == 0 {
		o.MaxUnannotatedLines = d.MaxUnannotatedLines
	}
	if o.TabWidth == 0 {
		o.TabWidth = d.TabWidth
	}
	if o.MaxInlineReplacementLength == 0 {
		o.MaxInlineReplacementLength = d.MaxInlineReplacementLength
	}
	return o
}
