package render

import (
	"sort"

	"github.com/yaklabco/annotate/pkg/styled"
)

// ulabel is one label of an underline group, keeping the emphasis of the
// span that contributed it.
type ulabel struct {
	text    styled.Text
	primary bool
}

func (l ulabel) style() styled.Style {
	if l.primary {
		return styled.PrimaryLabel.Style()
	}
	return styled.SecondaryLabel.Style()
}

// ugroup is a set of single-line spans covering the same byte range of one
// line, rendered as a single underline carrying all their labels.
type ugroup struct {
	begCol  int // byte offsets within the line
	endCol  int
	primary bool
	labels  []ulabel
	order   int

	dispStart int
	dispEnd   int
}

func (g *ugroup) style() styled.Style {
	if g.primary {
		return styled.PrimaryUnderline.Style()
	}
	return styled.SecondaryUnderline.Style()
}

// underlineRows renders the underline row for all single-line spans on one
// line, followed by their label rows.
func (e *engine) underlineRows(line int) {
	groups := e.groupSingles(line)
	if len(groups) == 0 {
		return
	}

	content := e.res.LineContent(line)
	maxEnd := 0
	for _, g := range groups {
		g.dispStart = displayCol(content, g.begCol, e.opts.TabWidth)
		g.dispEnd = displayCol(content, g.endCol, e.opts.TabWidth)
		if g.dispEnd <= g.dispStart {
			g.dispEnd = g.dispStart + 1
		}
		if g.dispEnd > maxEnd {
			maxEnd = g.dispEnd
		}
	}

	var b cellBuf
	base := b.writeText(0, e.barPrefix(), styled.SourceText.Style())
	e.gutterBars(&b, base, line, e.slots, nil)
	src := base + 2*e.slots
	draw := func(primary bool) {
		for _, g := range groups {
			if g.primary != primary {
				continue
			}
			ch := e.underlineChar(g.primary)
			for c := g.dispStart; c < g.dispEnd; c++ {
				b.setRune(src+c, ch, g.style())
			}
		}
	}
	draw(false)
	draw(true)

	// A single labeled group whose underline reaches furthest right gets
	// its label inline on the underline row.
	var labeled []*ugroup
	for _, g := range groups {
		if len(g.labels) > 0 {
			labeled = append(labeled, g)
		}
	}
	if len(labeled) == 1 && labeled[0].dispEnd == maxEnd && len(labeled[0].labels[0].text.Lines()) == 1 {
		g := labeled[0]
		col := src + g.dispEnd + 1
		first := g.labels[0]
		b.writeText(col, first.text.Resolve(first.style()), first.style())
		e.rows = append(e.rows, b.text())
		for _, extra := range g.labels[1:] {
			e.stackedLabel(line, col, extra.text, extra.style())
		}
		return
	}
	e.rows = append(e.rows, b.text())
	if len(labeled) == 0 {
		return
	}
	e.collisionLabels(line, labeled)
}

// stackedLabel emits one label row at a fixed column with no connector.
func (e *engine) stackedLabel(line, col int, label styled.Text, style styled.Style) {
	for _, part := range label.Lines() {
		var b cellBuf
		base := b.writeText(0, e.barPrefix(), styled.SourceText.Style())
		e.gutterBars(&b, base, line, e.slots, nil)
		b.writeText(col, part.Resolve(style), style)
		e.rows = append(e.rows, b.text())
	}
}

// collisionLabels renders labels that cannot sit inline: a connector row
// with a bar under each labeled underline, then one label per row. With
// labels on the right, the rightmost label is placed first so the bars of
// labels still pending stay visible to its left.
func (e *engine) collisionLabels(line int, labeled []*ugroup) {
	sort.SliceStable(labeled, func(i, j int) bool {
		if e.opts.LabelPosition == LabelLeft {
			return labeled[i].dispStart < labeled[j].dispStart
		}
		return labeled[i].dispStart > labeled[j].dispStart
	})

	var queue []struct {
		g     *ugroup
		label ulabel
	}
	for _, g := range labeled {
		for _, l := range g.labels {
			queue = append(queue, struct {
				g     *ugroup
				label ulabel
			}{g, l})
		}
	}

	src := e.numWidth + 3 + 2*e.slots
	connector := func(b *cellBuf, from int) {
		for _, item := range queue[from:] {
			b.setRune(src+item.g.dispStart, '|', item.g.style())
		}
	}

	var b cellBuf
	base := b.writeText(0, e.barPrefix(), styled.SourceText.Style())
	e.gutterBars(&b, base, line, e.slots, nil)
	connector(&b, 0)
	e.rows = append(e.rows, b.text())

	for i, item := range queue {
		style := item.label.style()
		for _, part := range item.label.text.Lines() {
			var lb cellBuf
			lbase := lb.writeText(0, e.barPrefix(), styled.SourceText.Style())
			e.gutterBars(&lb, lbase, line, e.slots, nil)
			connector(&lb, i+1)
			lb.writeText(src+item.g.dispStart, part.Resolve(style), style)
			e.rows = append(e.rows, lb.text())
		}
	}
}

// groupSingles merges the line's single-line spans that cover an identical
// byte range. A merged underline is primary if any member is, and carries
// the members' labels in the order the spans were added.
func (e *engine) groupSingles(line int) []*ugroup {
	var spans []*rspan
	for _, s := range e.singles {
		if s.beg.Line == line {
			spans = append(spans, s)
		}
	}
	if len(spans) == 0 {
		return nil
	}
	sort.SliceStable(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if a.beg.Col != b.beg.Col {
			return a.beg.Col < b.beg.Col
		}
		if a.end.Col != b.end.Col {
			return a.end.Col < b.end.Col
		}
		return a.order < b.order
	})
	var groups []*ugroup
	for _, s := range spans {
		if n := len(groups); n > 0 && groups[n-1].begCol == s.beg.Col && groups[n-1].endCol == s.end.Col {
			g := groups[n-1]
			g.primary = g.primary || s.primary
			if !s.label.Empty() {
				g.labels = append(g.labels, ulabel{text: s.label, primary: s.primary})
			}
			continue
		}
		g := &ugroup{begCol: s.beg.Col, endCol: s.end.Col, primary: s.primary, order: s.order}
		if !s.label.Empty() {
			g.labels = append(g.labels, ulabel{text: s.label, primary: s.primary})
		}
		groups = append(groups, g)
	}
	return groups
}
