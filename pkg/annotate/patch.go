package annotate

import (
	"strings"

	"github.com/yaklabco/annotate/pkg/srcpos"
)

// PatchKind classifies a patch by its data; no kind is stored.
type PatchKind uint8

const (
	// Replacement substitutes new text for a non-empty range.
	Replacement PatchKind = iota

	// Addition inserts text at a single position (empty range).
	Addition

	// Deletion removes a non-empty range (empty replacement).
	Deletion
)

func (k PatchKind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Deletion:
		return "deletion"
	default:
		return "replacement"
	}
}

// Patch is a suggested edit replacing the half-open range [Beg, End) with
// Replacement. Constructed once and immutable afterwards.
type Patch struct {
	Beg         srcpos.Location
	End         srcpos.Location
	Replacement string

	// replacementLines caches ReplacementLineCount, offset by one so the
	// zero value means "not computed".
	replacementLines int
}

// IsDeletion reports whether the patch only removes text.
func (p *Patch) IsDeletion() bool {
	return p.Replacement == ""
}

// Kind classifies the patch given its resolved endpoints: an empty range is
// an addition, an empty replacement a deletion, anything else a
// replacement.
func (p *Patch) Kind(beg, end srcpos.ResolvedLocation) PatchKind {
	switch {
	case beg.Offset == end.Offset:
		return Addition
	case p.Replacement == "":
		return Deletion
	default:
		return Replacement
	}
}

// ReplacementLineCount returns the number of lines the replacement text
// spans. Computed once and cached.
func (p *Patch) ReplacementLineCount() int {
	if p.replacementLines == 0 {
		p.replacementLines = strings.Count(p.Replacement, "\n") + 2
	}
	return p.replacementLines - 1
}
