package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/annotate/pkg/annotate"
	"github.com/yaklabco/annotate/pkg/srcpos"
	"github.com/yaklabco/annotate/pkg/styled"
)

// rpatch is a patch with both endpoints resolved.
type rpatch struct {
	beg         srcpos.ResolvedLocation
	end         srcpos.ResolvedLocation
	replacement string
	kind        annotate.PatchKind
}

// prow is one not-yet-formatted row of patch output. Rows carrying mark 0
// are patched source rows; '-' and '+' rows are diff rows; marker rows
// have num < 0 and hold the inline '+'/'~' markers.
type prow struct {
	num     int // 0-based line, -1 for unnumbered rows
	mark    byte
	content styled.Text
}

// Patches renders a source's patches as either patched lines with inline
// change markers or as deleted/inserted line pairs. Sources without
// patches produce no rows.
func Patches(src *annotate.Source, opts Options) []styled.Text {
	opts = opts.withDefaults()
	res := src.Resolver()
	patches := resolvePatches(src, res)
	if len(patches) == 0 {
		return nil
	}

	var rows []prow
	delta := 0
	for g := 0; g < len(patches); {
		end := g + 1
		maxLine := patches[g].end.Line
		for end < len(patches) && patches[end].beg.Line <= maxLine {
			if patches[end].end.Line > maxLine {
				maxLine = patches[end].end.Line
			}
			end++
		}
		group := patches[g:end]
		if inlineEligible(group, res, opts) {
			rows = append(rows, inlineRows(group, res, opts, delta)...)
		} else {
			var groupDelta int
			var groupRows []prow
			groupRows, groupDelta = diffRows(group, res, opts, delta)
			rows = append(rows, groupRows...)
			delta += groupDelta
		}
		g = end
	}

	return formatPatchRows(rows, src.FirstLine, opts)
}

// resolvePatches resolves every patch endpoint, orders patches by offset
// and rejects overlap.
func resolvePatches(src *annotate.Source, res *srcpos.Resolver) []*rpatch {
	var out []*rpatch
	for i := range src.Patches {
		p := &src.Patches[i]
		beg := res.Normalize(res.Fill(p.Beg))
		end := res.Normalize(res.Fill(p.End))
		out = append(out, &rpatch{
			beg:         beg,
			end:         end,
			replacement: p.Replacement,
			kind:        p.Kind(beg, end),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].beg.Offset < out[j].beg.Offset })
	for i := 1; i < len(out); i++ {
		if out[i-1].end.Offset > out[i].beg.Offset {
			panic(fmt.Sprintf("annotate: overlapping patches at offsets %d and %d",
				out[i-1].beg.Offset, out[i].beg.Offset))
		}
	}
	return out
}

// inlineEligible reports whether a patch group renders as a patched line
// with change markers: every patch edits a single real line, none deletes,
// no replacement spans lines, and the edited width stays small.
func inlineEligible(group []*rpatch, res *srcpos.Resolver, opts Options) bool {
	line := group[0].beg.Line
	if line >= res.LineCount() {
		return false
	}
	total := 0
	for _, p := range group {
		if p.beg.Line != line || p.end.Line != line {
			return false
		}
		if p.kind == annotate.Deletion || strings.Contains(p.replacement, "\n") {
			return false
		}
		total += len(p.replacement)
	}
	return total < opts.MaxInlineReplacementLength
}

// inlineRows renders one patched line followed by its marker row.
func inlineRows(group []*rpatch, res *srcpos.Resolver, opts Options, delta int) []prow {
	line := group[0].beg.Line
	content := res.LineContent(line)
	lineStart := res.LineStart(line)

	type segment struct {
		text string
		mark byte // 0 for untouched text
	}
	var segs []segment
	cur := 0
	for _, p := range group {
		b, e := p.beg.Offset-lineStart, p.end.Offset-lineStart
		if b > cur {
			segs = append(segs, segment{text: content[cur:b]})
		}
		mark := byte('~')
		if p.kind == annotate.Addition {
			mark = '+'
		}
		segs = append(segs, segment{text: p.replacement, mark: mark})
		cur = e
	}
	if cur < len(content) {
		segs = append(segs, segment{text: content[cur:]})
	}

	var patched styled.Text
	var marks cellBuf
	col := 0
	for _, s := range segs {
		style := styled.SourceText.Style()
		switch s.mark {
		case '+':
			style = styled.Addition.Style()
		case '~':
			style = styled.Replacement.Style()
		}
		width := 0
		for _, r := range s.text {
			next := advanceCol(col+width, r, opts.TabWidth)
			width = next - col
		}
		patched.Push(expandTabsFrom(s.text, col, opts.TabWidth), style)
		if s.mark != 0 {
			marks.fill(col, col+width, rune(s.mark), style)
		}
		col += width
	}

	num := line
	if opts.PatchNumbering == AfterPatch {
		num += delta
	}
	return []prow{
		{num: num, content: patched},
		{num: -1, content: marks.text()},
	}
}

// segPiece is a slice of the patched segment with its provenance: srcOff
// is the original byte offset of the piece, or -1 for replacement text, in
// which case line is the line the patch began on.
type segPiece struct {
	text   string
	srcOff int
	line   int
}

// diffRows renders a patch group as removed and inserted lines. Removed
// lines keep their original numbers; inserted lines are numbered by their
// post-patch position, or by the line that produced them when numbering
// before the patch.
func diffRows(group []*rpatch, res *srcpos.Resolver, opts Options, delta int) ([]prow, int) {
	text := res.Text()
	lineCount := res.LineCount()

	l0 := group[0].beg.Line
	l1 := group[0].end.Line
	for _, p := range group[1:] {
		if p.end.Line > l1 {
			l1 = p.end.Line
		}
	}

	segBeg := res.LineStart(l0)
	var oldSeg string
	switch {
	case l0 >= lineCount:
		// The whole group sits on the hypothetical trailing line, which
		// starts one past the end of the text and is empty.
		oldSeg = ""
	case l1 >= lineCount:
		// The group reaches past the final newline.
		oldSeg = text[segBeg:] + "\n"
	default:
		oldSeg = text[segBeg : res.LineStart(l1+1)-1]
	}

	var pieces []segPiece
	cur := segBeg
	for _, p := range group {
		if p.beg.Offset > cur {
			pieces = append(pieces, segPiece{text: sliceSeg(oldSeg, segBeg, cur, p.beg.Offset), srcOff: cur})
		}
		if p.replacement != "" {
			pieces = append(pieces, segPiece{text: p.replacement, srcOff: -1, line: p.beg.Line})
		}
		cur = p.end.Offset
	}
	segEnd := segBeg + len(oldSeg)
	if cur < segEnd {
		pieces = append(pieces, segPiece{text: sliceSeg(oldSeg, segBeg, cur, segEnd), srcOff: cur})
	}

	oldLines := strings.Split(oldSeg, "\n")
	newLines, newAttr := splitPieces(pieces, res)

	// Identical leading and trailing lines carry no change.
	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	var rows []prow
	for i := prefix; i < len(oldLines)-suffix; i++ {
		var t styled.Text
		t.Push(strings.TrimSuffix(oldLines[i], "\r"), styled.Deletion.Style())
		rows = append(rows, prow{num: l0 + i, mark: '-', content: t})
	}
	for i := prefix; i < len(newLines)-suffix; i++ {
		num := l0 + delta + i
		if opts.PatchNumbering == BeforePatch {
			num = newAttr[i]
		}
		var t styled.Text
		t.Push(strings.TrimSuffix(newLines[i], "\r"), styled.Addition.Style())
		rows = append(rows, prow{num: num, mark: '+', content: t})
	}
	return rows, len(newLines) - len(oldLines)
}

// sliceSeg cuts a piece of the segment by absolute offsets. The segment
// may hold one byte past the end of the text for the trailing newline.
func sliceSeg(seg string, segBeg, from, to int) string {
	b, e := from-segBeg, to-segBeg
	if e > len(seg) {
		e = len(seg)
	}
	if b > len(seg) {
		b = len(seg)
	}
	return seg[b:e]
}

// splitPieces splits the patched segment into lines and records, for each
// line, the original line it is attributed to: the line of the first
// piece contributing to it.
func splitPieces(pieces []segPiece, res *srcpos.Resolver) ([]string, []int) {
	var lines []string
	var attr []int
	var buf strings.Builder
	cur := -1
	flush := func() {
		lines = append(lines, buf.String())
		attr = append(attr, cur)
		buf.Reset()
		cur = -1
	}
	for _, p := range pieces {
		for i := 0; i < len(p.text); i++ {
			if cur < 0 {
				if p.srcOff >= 0 {
					cur = res.OffsetToLineCol(p.srcOff + i).Line
				} else {
					cur = p.line
				}
			}
			if p.text[i] == '\n' {
				flush()
			} else {
				buf.WriteByte(p.text[i])
			}
		}
	}
	flush()
	return lines, attr
}

// formatPatchRows turns abstract rows into display rows with the shared
// number column.
func formatPatchRows(rows []prow, firstLine int, opts Options) []styled.Text {
	width := opts.LineNumWidth
	if width == 0 {
		maxNum := 0
		for _, r := range rows {
			if r.num > maxNum {
				maxNum = r.num
			}
		}
		width = len(fmt.Sprintf("%d", firstLine+maxNum))
	}

	format := "%*d"
	if opts.LineNumAlignment == AlignLeft {
		format = "%-*d"
	}
	out := make([]styled.Text, 0, len(rows))
	for _, r := range rows {
		var t styled.Text
		if r.num < 0 {
			t.Push(spaces(width), styled.SourceText.Style())
		} else {
			t.Push(fmt.Sprintf(format, width, firstLine+r.num), styled.LineNumber.Style())
		}
		sep := " | "
		switch r.mark {
		case '-':
			sep = " - "
		case '+':
			sep = " + "
		}
		t.Push(sep, styled.Separator.Style())
		t.Append(r.content)
		out = append(out, t.TrimRight())
	}
	return out
}
