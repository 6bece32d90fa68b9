package srcpos

import (
	"slices"
	"sort"
	"strings"
)

// lineEntry records that a line's first byte sits at a given offset.
type lineEntry struct {
	line  int
	start int
}

// Resolver converts between byte offsets and line/column positions over one
// text buffer. Line-start offsets are cached sparsely: each query scans from
// the nearest already-cached boundary and caches what it discovers, so the
// amortized cost of random-order queries is bounded by the distance between
// cache entries, not by the buffer size.
//
// The text is treated as if it always ended with a newline: one trailing
// real newline is stripped on construction, and a hypothetical empty line
// exists after the last real line, starting at len(text)+1. Positions past
// the end of the text resolve to that line instead of failing.
//
// A Resolver is shared by pointer across every annotate.Source over the
// same text. Methods mutate the cache and are not safe for concurrent use.
type Resolver struct {
	text      string
	entries   []lineEntry // sorted by line; starts are monotonic as well
	lineCount int         // number of real lines; 0 until discovered
}

// NewResolver creates a resolver for the given text. The text is borrowed,
// not copied, and must not change while the resolver is in use.
func NewResolver(text string) *Resolver {
	text = strings.TrimSuffix(text, "\n")
	return &Resolver{text: text, entries: []lineEntry{{line: 0, start: 0}}}
}

// Text returns the resolver's text with the trailing newline stripped.
func (r *Resolver) Text() string {
	return r.text
}

// LineCount returns the number of real lines. An empty buffer has one.
func (r *Resolver) LineCount() int {
	if r.lineCount == 0 {
		last := r.entries[len(r.entries)-1]
		if last.start > len(r.text) {
			r.lineCount = last.line
		} else {
			r.lineCount = last.line + 1 + strings.Count(r.text[last.start:], "\n")
		}
	}
	return r.lineCount
}

// LineStart returns the offset of the line's first byte. For any line past
// the last real line it returns len(text)+1, the start of the hypothetical
// trailing line. The discovered boundary is cached.
func (r *Resolver) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	idx := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].line >= line })
	if idx < len(r.entries) && r.entries[idx].line == line {
		return r.entries[idx].start
	}
	lo := r.entries[idx-1]
	if idx < len(r.entries) {
		hi := r.entries[idx]
		if hi.line-line < line-lo.line {
			return r.scanBackToLine(hi, line)
		}
	}
	return r.scanForwardToLine(lo, line)
}

func (r *Resolver) scanForwardToLine(from lineEntry, target int) int {
	cur := from
	for cur.line < target {
		if cur.start > len(r.text) {
			break
		}
		nl := strings.IndexByte(r.text[cur.start:], '\n')
		if nl < 0 {
			r.lineCount = cur.line + 1
			cur = lineEntry{line: cur.line + 1, start: len(r.text) + 1}
			break
		}
		cur = lineEntry{line: cur.line + 1, start: cur.start + nl + 1}
	}
	r.cache(cur)
	return cur.start
}

func (r *Resolver) scanBackToLine(from lineEntry, target int) int {
	cur := from
	for cur.line > target {
		cur = lineEntry{line: cur.line - 1, start: r.prevLineStart(cur.start)}
	}
	r.cache(cur)
	return cur.start
}

// prevLineStart returns the start offset of the line preceding the line
// that starts at the given offset. The previous line's terminator sits at
// start-1, except for the hypothetical trailing line whose terminator is
// imaginary.
func (r *Resolver) prevLineStart(start int) int {
	if start > len(r.text) {
		return strings.LastIndexByte(r.text, '\n') + 1
	}
	return strings.LastIndexByte(r.text[:start-1], '\n') + 1
}

func (r *Resolver) cache(e lineEntry) {
	idx := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].line >= e.line })
	if idx < len(r.entries) && r.entries[idx].line == e.line {
		return
	}
	r.entries = slices.Insert(r.entries, idx, e)
}

// OffsetToLineCol resolves a byte offset to its line and column. Offsets
// past len(text) belong to the hypothetical trailing line with
// col = offset - (len(text)+1). A newline byte belongs to the line it
// terminates.
func (r *Resolver) OffsetToLineCol(offset int) ResolvedLocation {
	if offset < 0 {
		offset = 0
	}
	if offset > len(r.text) {
		return ResolvedLocation{Line: r.LineCount(), Col: offset - (len(r.text) + 1), Offset: offset}
	}
	idx := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].start > offset })
	lo := r.entries[idx-1]
	if idx < len(r.entries) {
		hi := r.entries[idx]
		if hi.start-offset < offset-lo.start {
			return r.scanBackToOffset(hi, offset)
		}
	}
	return r.scanForwardToOffset(lo, offset)
}

func (r *Resolver) scanForwardToOffset(from lineEntry, offset int) ResolvedLocation {
	cur := from
	for {
		nl := strings.IndexByte(r.text[cur.start:], '\n')
		if nl < 0 || cur.start+nl >= offset {
			break
		}
		cur = lineEntry{line: cur.line + 1, start: cur.start + nl + 1}
	}
	r.cache(cur)
	return ResolvedLocation{Line: cur.line, Col: offset - cur.start, Offset: offset}
}

func (r *Resolver) scanBackToOffset(from lineEntry, offset int) ResolvedLocation {
	cur := from
	for cur.start > offset {
		cur = lineEntry{line: cur.line - 1, start: r.prevLineStart(cur.start)}
	}
	r.cache(cur)
	return ResolvedLocation{Line: cur.line, Col: offset - cur.start, Offset: offset}
}

// Fill resolves whichever representation the location is missing. A
// line/column past the end of the text clamps to the hypothetical trailing
// line. The Location type guarantees the input is not already fully
// specified.
func (r *Resolver) Fill(loc Location) ResolvedLocation {
	if loc.ByOffset() {
		return r.OffsetToLineCol(loc.Offset())
	}
	line, col := loc.LineCol()
	start := r.LineStart(line)
	if start > len(r.text) {
		line = r.LineCount()
	}
	return ResolvedLocation{Line: line, Col: col, Offset: start + col}
}

// Normalize moves a position whose column exceeds its line's length to the
// start of the next line, or to the hypothetical trailing line after the
// last real one. Positions on the hypothetical line are returned unchanged.
func (r *Resolver) Normalize(loc ResolvedLocation) ResolvedLocation {
	if loc.Line >= r.LineCount() {
		return loc
	}
	if loc.Col <= r.lineLen(loc.Line) {
		return loc
	}
	next := r.LineStart(loc.Line + 1)
	line := loc.Line + 1
	if next > len(r.text) {
		line = r.LineCount()
	}
	return ResolvedLocation{Line: line, Col: 0, Offset: next}
}

// lineLen returns the length of a real line's content, excluding its
// terminator.
func (r *Resolver) lineLen(line int) int {
	start := r.LineStart(line)
	next := r.LineStart(line + 1)
	if next > len(r.text) {
		return len(r.text) - start
	}
	return next - 1 - start
}

// AdjustSpan rewrites a half-open span for annotation layout: an exclusive
// end at column 0 really ends at the end of the previous line (without this
// a span ending on a line boundary would falsely look multi-line), and an
// empty span annotates one unit starting at beg. Applying AdjustSpan to its
// own output is a no-op.
func (r *Resolver) AdjustSpan(beg, end ResolvedLocation) (ResolvedLocation, ResolvedLocation) {
	for end.Col == 0 && end.Line > beg.Line {
		line := end.Line - 1
		start := r.LineStart(line)
		off := r.LineStart(end.Line) - 1
		end = ResolvedLocation{Line: line, Col: off - start, Offset: off}
	}
	if end.Offset <= beg.Offset {
		end = ResolvedLocation{Line: beg.Line, Col: beg.Col + 1, Offset: beg.Offset + 1}
	}
	return beg, end
}

// LineContent returns a line's content without its terminator; a trailing
// carriage return is stripped as well. Out-of-range lines return "".
func (r *Resolver) LineContent(line int) string {
	if line < 0 || line >= r.LineCount() {
		return ""
	}
	start := r.LineStart(line)
	end := len(r.text)
	if next := r.LineStart(line + 1); next <= len(r.text) {
		end = next - 1
	}
	return strings.TrimSuffix(r.text[start:end], "\r")
}
