// Package annotate holds the data model for an annotated source: a text
// buffer plus the labeled spans and suggested-fix patches to render over
// it. A Source is write-then-render; there are no removal operations.
package annotate

import (
	"github.com/yaklabco/annotate/pkg/srcpos"
	"github.com/yaklabco/annotate/pkg/styled"
)

// Span is a half-open [Beg, End) region of source text with an optional
// label. An empty span annotates one unit starting at Beg; a span whose
// end column is 0 ends at the end of the previous line (see
// srcpos.Resolver.AdjustSpan).
type Span struct {
	Beg   srcpos.Location
	End   srcpos.Location
	Label styled.Text
}

// Source is a text buffer under annotation. Text and Origin are borrowed
// from the caller and must outlive the Source. Spans and patches are owned.
type Source struct {
	// Text is the raw source content.
	Text string

	// Origin names the source in diagnostic headers, e.g. a file path.
	Origin string

	// FirstLine is the display number of line 0. Defaults to 1.
	FirstLine int

	// Primary and Secondary hold annotation spans in declaration order.
	// Declaration order is the tie-break for identical spans, so it is
	// part of the rendered output.
	Primary   []Span
	Secondary []Span

	// Patches holds suggested edits. Patches must not overlap.
	Patches []Patch

	resolver *srcpos.Resolver
}

// NewSource creates a Source over borrowed text with its own resolver.
func NewSource(text, origin string) *Source {
	return &Source{
		Text:      text,
		Origin:    origin,
		FirstLine: 1,
		resolver:  srcpos.NewResolver(text),
	}
}

// NewSharedSource creates a Source that shares a resolver with other
// Sources over the same text, so line-boundary discovery is amortized
// across them. The resolver must have been built from the same text.
func NewSharedSource(text, origin string, resolver *srcpos.Resolver) *Source {
	return &Source{
		Text:      text,
		Origin:    origin,
		FirstLine: 1,
		resolver:  resolver,
	}
}

// Resolver returns the source's position resolver.
func (s *Source) Resolver() *srcpos.Resolver {
	if s.resolver == nil {
		s.resolver = srcpos.NewResolver(s.Text)
	}
	return s.resolver
}

// WithFirstLine sets the display number of line 0.
func (s *Source) WithFirstLine(n int) *Source {
	s.FirstLine = n
	return s
}

// AddPrimary appends a primary annotation span.
func (s *Source) AddPrimary(beg, end srcpos.Location, label styled.Text) *Source {
	s.Primary = append(s.Primary, Span{Beg: beg, End: end, Label: label})
	return s
}

// AddPrimaryRange appends a primary annotation over a byte range.
func (s *Source) AddPrimaryRange(beg, end int, label styled.Text) *Source {
	return s.AddPrimary(srcpos.AtOffset(beg), srcpos.AtOffset(end), label)
}

// AddSecondary appends a secondary annotation span.
func (s *Source) AddSecondary(beg, end srcpos.Location, label styled.Text) *Source {
	s.Secondary = append(s.Secondary, Span{Beg: beg, End: end, Label: label})
	return s
}

// AddSecondaryRange appends a secondary annotation over a byte range.
func (s *Source) AddSecondaryRange(beg, end int, label styled.Text) *Source {
	return s.AddSecondary(srcpos.AtOffset(beg), srcpos.AtOffset(end), label)
}

// AddPatch appends a suggested edit replacing [beg, end) with replacement.
func (s *Source) AddPatch(beg, end srcpos.Location, replacement string) *Source {
	s.Patches = append(s.Patches, Patch{Beg: beg, End: end, Replacement: replacement})
	return s
}

// AddPatchRange appends a suggested edit over a byte range.
func (s *Source) AddPatchRange(beg, end int, replacement string) *Source {
	return s.AddPatch(srcpos.AtOffset(beg), srcpos.AtOffset(end), replacement)
}

// LineContent returns a line's content without its terminator.
// Out-of-range lines return "".
func (s *Source) LineContent(line int) string {
	return s.Resolver().LineContent(line)
}
