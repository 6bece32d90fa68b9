package render

import (
	"fmt"
	"sort"

	"github.com/yaklabco/annotate/pkg/annotate"
	"github.com/yaklabco/annotate/pkg/srcpos"
	"github.com/yaklabco/annotate/pkg/styled"
)

// rspan is an annotation span with both endpoints resolved and adjusted.
type rspan struct {
	beg     srcpos.ResolvedLocation
	end     srcpos.ResolvedLocation
	label   styled.Text
	primary bool
	order   int
}

func (s *rspan) multiline() bool {
	return s.beg.Line != s.end.Line
}

func (s *rspan) underlineStyle() styled.Style {
	if s.primary {
		return styled.PrimaryUnderline.Style()
	}
	return styled.SecondaryUnderline.Style()
}

func (s *rspan) labelStyle() styled.Style {
	if s.primary {
		return styled.PrimaryLabel.Style()
	}
	return styled.SecondaryLabel.Style()
}

// mspan is a multi-line span with its assigned gutter slot.
type mspan struct {
	*rspan
	slot int
}

// engine renders one source's annotation diagram.
type engine struct {
	src  *annotate.Source
	res  *srcpos.Resolver
	opts Options

	singles []*rspan
	multis  []*mspan
	slots   int // gutter slot count; gutter width is 2*slots

	numWidth int
	rows     []styled.Text
}

// Annotations renders the annotation diagram for one source: numbered
// source rows, underline and label rows, multi-line bracket rows and
// elision rows. Sources without annotations produce no rows.
func Annotations(src *annotate.Source, opts Options) []styled.Text {
	e := &engine{src: src, res: src.Resolver(), opts: opts.withDefaults()}
	e.resolveSpans()
	if len(e.singles) == 0 && len(e.multis) == 0 {
		return nil
	}
	e.assignSlots()
	e.layout()
	return e.rows
}

// resolveSpans fills, normalizes and adjusts every span, preserving
// declaration order as the tie-break for identical spans.
func (e *engine) resolveSpans() {
	order := 0
	add := func(spans []annotate.Span, primary bool) {
		for _, sp := range spans {
			beg := e.res.Normalize(e.res.Fill(sp.Beg))
			end := e.res.Normalize(e.res.Fill(sp.End))
			beg, end = e.res.AdjustSpan(beg, end)
			rs := &rspan{beg: beg, end: end, label: sp.Label, primary: primary, order: order}
			order++
			if rs.multiline() {
				e.multis = append(e.multis, &mspan{rspan: rs})
			} else {
				e.singles = append(e.singles, rs)
			}
		}
	}
	add(e.src.Primary, true)
	add(e.src.Secondary, false)
}

// assignSlots gives each multi-line span the least gutter slot unused by
// any earlier-opened span whose line range overlaps it. Depth 0 is the
// outermost column.
func (e *engine) assignSlots() {
	sort.SliceStable(e.multis, func(i, j int) bool {
		a, b := e.multis[i], e.multis[j]
		if a.beg.Line != b.beg.Line {
			return a.beg.Line < b.beg.Line
		}
		if a.end.Line != b.end.Line {
			return a.end.Line > b.end.Line
		}
		return a.order < b.order
	})
	for i, m := range e.multis {
		var used uint64
		for _, prev := range e.multis[:i] {
			if prev.beg.Line <= m.end.Line && m.beg.Line <= prev.end.Line {
				used |= 1 << prev.slot
			}
		}
		slot := 0
		for used&(1<<slot) != 0 {
			slot++
		}
		m.slot = slot
		if slot+1 > e.slots {
			e.slots = slot + 1
		}
	}
}

// layout decides which lines are displayed and emits all rows in order.
func (e *engine) layout() {
	minLine, maxLine := e.lineRange()

	emit := make(map[int]bool)
	suppressed := make(map[int]bool)
	for _, s := range e.singles {
		emit[s.beg.Line] = true
	}
	for _, m := range e.multis {
		emit[m.beg.Line] = true
		emit[m.end.Line] = true
		total := m.end.Line - m.beg.Line + 1
		if total <= e.opts.MaxMultilineLines {
			for l := m.beg.Line; l <= m.end.Line; l++ {
				emit[l] = true
			}
			continue
		}
		// Fold the interior, keeping the first and last lines visible.
		head := (e.opts.MaxMultilineLines + 1) / 2
		tail := e.opts.MaxMultilineLines - head
		for l := m.beg.Line; l < m.beg.Line+head; l++ {
			emit[l] = true
		}
		for l := m.end.Line - tail + 1; l <= m.end.Line; l++ {
			emit[l] = true
		}
		for l := m.beg.Line + head; l <= m.end.Line-tail; l++ {
			suppressed[l] = true
		}
	}

	// Short unannotated gaps are shown in full; longer ones, and any gap
	// holding a folded multi-line interior, collapse into an elision row.
	gapStart := -1
	for l := minLine; l <= maxLine+1; l++ {
		if l <= maxLine && !emit[l] {
			if gapStart < 0 {
				gapStart = l
			}
			continue
		}
		if gapStart >= 0 {
			length := l - gapStart
			show := length <= e.opts.MaxUnannotatedLines
			for g := gapStart; show && g < l; g++ {
				if suppressed[g] {
					show = false
				}
			}
			if show {
				for g := gapStart; g < l; g++ {
					emit[g] = true
				}
			}
			gapStart = -1
		}
	}

	e.numWidth = e.opts.LineNumWidth
	if e.numWidth == 0 {
		e.numWidth = len(fmt.Sprintf("%d", e.src.FirstLine+maxLine))
	}

	inGap := false
	for l := minLine; l <= maxLine; l++ {
		if !emit[l] {
			inGap = true
			continue
		}
		if inGap {
			e.rows = append(e.rows, e.elisionRow(l))
			inGap = false
		}
		e.sourceRow(l)
		e.annotationRows(l)
	}
}

func (e *engine) lineRange() (minLine, maxLine int) {
	first := true
	visit := func(s *rspan) {
		if first || s.beg.Line < minLine {
			minLine = s.beg.Line
		}
		if first || s.end.Line > maxLine {
			maxLine = s.end.Line
		}
		first = false
	}
	for _, s := range e.singles {
		visit(s)
	}
	for _, m := range e.multis {
		visit(m.rspan)
	}
	return minLine, maxLine
}

// numPrefix renders "{num} | " for a 0-based source line.
func (e *engine) numPrefix(line int) styled.Text {
	format := "%*d"
	if e.opts.LineNumAlignment == AlignLeft {
		format = "%-*d"
	}
	var t styled.Text
	t.Push(fmt.Sprintf(format, e.numWidth, e.src.FirstLine+line), styled.LineNumber.Style())
	t.Push(" | ", styled.Separator.Style())
	return t
}

// barPrefix renders the blank "{pad} | " prefix of annotation rows.
func (e *engine) barPrefix() styled.Text {
	var t styled.Text
	t.Push(spaces(e.numWidth), styled.SourceText.Style())
	t.Push(" | ", styled.Separator.Style())
	return t
}

// elisionRow renders the "..." row standing in for a collapsed gap, with
// the continuation bars of any multi-line spans crossing it. gapLine is a
// line inside the gap.
func (e *engine) elisionRow(gapLine int) styled.Text {
	var b cellBuf
	b.writeString(0, "...", styled.Elision.Style())
	base := e.numWidth + 3
	b.grow(base - 1)
	for _, m := range e.multis {
		if m.beg.Line < gapLine && gapLine <= m.end.Line {
			b.setRune(base+2*m.slot, '|', m.underlineStyle())
		}
	}
	return b.text()
}

// sourceRow renders one numbered source line with its gutter bars.
func (e *engine) sourceRow(line int) {
	var b cellBuf
	col := b.writeText(0, e.numPrefix(line), styled.SourceText.Style())
	for _, m := range e.multis {
		if m.beg.Line < line && line <= m.end.Line {
			b.setRune(col+2*m.slot, '|', m.underlineStyle())
		}
	}
	start := col + 2*e.slots
	b.grow(start - 1)
	content := expandTabs(e.res.LineContent(line), e.opts.TabWidth)
	b.writeString(start, content, styled.SourceText.Style())
	e.rows = append(e.rows, b.text())
}

// annotationRows emits, for one displayed line: opening corner rows of
// multi-line spans beginning here, underline and label rows of single-line
// spans, then closing rows of multi-line spans ending here, innermost
// first.
func (e *engine) annotationRows(line int) {
	for _, m := range e.multis { // slot-sorted emission: outermost corner first
		if m.beg.Line == line {
			e.cornerRow(m)
		}
	}
	e.underlineRows(line)
	var closing []*mspan
	for _, m := range e.multis {
		if m.end.Line == line {
			closing = append(closing, m)
		}
	}
	sort.Slice(closing, func(i, j int) bool { return closing[i].slot > closing[j].slot })
	for _, m := range closing {
		e.closeRow(m)
	}
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
