package annotate

import (
	"fmt"
	"sort"
	"strings"
)

// ConflictError describes overlapping patches.
type ConflictError struct {
	Patch1 Patch
	Patch2 Patch
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping patches: %s..%s and %s..%s",
		e.Patch1.Beg, e.Patch1.End, e.Patch2.Beg, e.Patch2.End)
}

// Apply splices the source's patches into its text and returns the
// patched result. Patches may be given in any order; overlapping patches
// return a ConflictError.
func (s *Source) Apply() (string, error) {
	if len(s.Patches) == 0 {
		return s.Text, nil
	}

	// Offsets address the resolver's text but edits splice the original,
	// so a patch reaching past the final newline can remove it.
	res := s.Resolver()
	text := s.Text

	type edit struct {
		beg, end int
		text     string
		patch    Patch
	}
	edits := make([]edit, 0, len(s.Patches))
	for _, p := range s.Patches {
		beg := res.Fill(p.Beg)
		end := res.Fill(p.End)
		b, e := beg.Offset, end.Offset
		if e > len(text) {
			e = len(text)
		}
		if b > e {
			b = e
		}
		edits = append(edits, edit{beg: b, end: e, text: p.Replacement, patch: p})
	}

	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].beg != edits[j].beg {
			return edits[i].beg < edits[j].beg
		}
		return edits[i].end < edits[j].end
	})
	for i := 1; i < len(edits); i++ {
		if edits[i].beg < edits[i-1].end {
			return "", &ConflictError{Patch1: edits[i-1].patch, Patch2: edits[i].patch}
		}
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.text) - (e.end - e.beg)
	}

	var out strings.Builder
	out.Grow(len(text) + delta)
	cursor := 0
	for _, e := range edits {
		out.WriteString(text[cursor:e.beg])
		out.WriteString(e.text)
		cursor = e.end
	}
	out.WriteString(text[cursor:])
	return out.String(), nil
}
