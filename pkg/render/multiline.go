package render

import (
	"github.com/yaklabco/annotate/pkg/styled"
)

// gutterBars draws the continuation bars of every multi-line span covering
// this annotation row, except skip and any span in a slot >= limit.
func (e *engine) gutterBars(b *cellBuf, base, line, limit int, skip *mspan) {
	for _, m := range e.multis {
		if m == skip || m.slot >= limit {
			continue
		}
		if m.beg.Line <= line && line <= m.end.Line {
			b.setRune(base+2*m.slot, '|', m.underlineStyle())
		}
	}
}

// cornerRow draws the opening bracket of a multi-line span: underscores
// running from the span's gutter slot to an underline character below the
// first annotated column.
func (e *engine) cornerRow(m *mspan) {
	line := m.beg.Line
	var b cellBuf
	base := b.writeText(0, e.barPrefix(), styled.SourceText.Style())
	for _, other := range e.multis {
		if other == m || line > other.end.Line {
			continue
		}
		// Spans opening on the same line draw their corners outermost
		// first, so only earlier-opened spans show a bar here.
		if other.beg.Line < line || (other.beg.Line == line && other.slot < m.slot) {
			b.setRune(base+2*other.slot, '|', other.underlineStyle())
		}
	}
	content := e.res.LineContent(line)
	startCol := displayCol(content, m.beg.Col, e.opts.TabWidth)
	style := m.underlineStyle()
	caret := base + 2*e.slots + startCol
	for c := base + 2*m.slot + 1; c < caret; c++ {
		b.setRune(c, '_', style)
	}
	b.setRune(caret, e.underlineChar(m.primary), style)
	e.rows = append(e.rows, b.text())
}

// closeRow draws the closing bracket of a multi-line span: a bar in the
// span's slot, underscores to the final annotated column, the underline
// character and the label. Underscores run over the bars of inner slots.
func (e *engine) closeRow(m *mspan) {
	line := m.end.Line
	var b cellBuf
	base := b.writeText(0, e.barPrefix(), styled.SourceText.Style())
	e.gutterBars(&b, base, line, m.slot, m)
	style := m.underlineStyle()
	b.setRune(base+2*m.slot, '|', style)
	content := e.res.LineContent(line)
	endCol := 0
	if m.end.Col > 0 {
		endCol = displayCol(content, lastRuneStart(content, m.end.Col), e.opts.TabWidth)
	}
	caret := base + 2*e.slots + endCol
	for c := base + 2*m.slot + 1; c < caret; c++ {
		b.setRune(c, '_', style)
	}
	b.setRune(caret, e.underlineChar(m.primary), style)
	if !m.label.Empty() {
		e.attachLabel(&b, base, line, m.slot, m, caret+2, m.label, m.labelStyle())
		return
	}
	e.rows = append(e.rows, b.text())
}

// attachLabel writes a label starting at column col of the current row,
// emitting extra rows for the label's remaining lines at the same column.
func (e *engine) attachLabel(b *cellBuf, base, line, limit int, skip *mspan, col int, label styled.Text, style styled.Style) {
	lines := label.Lines()
	b.writeText(col, lines[0].Resolve(style), style)
	e.rows = append(e.rows, b.text())
	for _, rest := range lines[1:] {
		var rb cellBuf
		rbase := rb.writeText(0, e.barPrefix(), styled.SourceText.Style())
		e.gutterBars(&rb, rbase, line, limit, skip)
		rb.writeText(col, rest.Resolve(style), style)
		e.rows = append(e.rows, rb.text())
	}
}

func (e *engine) underlineChar(primary bool) rune {
	if primary {
		return e.opts.PrimaryUnderline
	}
	return e.opts.SecondaryUnderline
}
