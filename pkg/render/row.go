package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/annotate/pkg/styled"
)

// cell is one display column of a row under construction. A zero rune
// marks a column covered by the preceding wide glyph.
type cell struct {
	ch    rune
	style styled.Style
}

// cellBuf assembles one display row column by column, so underlines, bars
// and labels can be placed out of order and still come out aligned.
type cellBuf struct {
	cells []cell
}

func (b *cellBuf) grow(col int) {
	for len(b.cells) <= col {
		b.cells = append(b.cells, cell{ch: ' '})
	}
}

// setRune places a single-width rune at col.
func (b *cellBuf) setRune(col int, r rune, st styled.Style) {
	b.grow(col)
	b.cells[col] = cell{ch: r, style: st}
}

// fill places r on every column of [from, to).
func (b *cellBuf) fill(from, to int, r rune, st styled.Style) {
	for col := from; col < to; col++ {
		b.setRune(col, r, st)
	}
}

// writeString places s starting at col and returns the column after it.
// Wide glyphs cover two columns.
func (b *cellBuf) writeString(col int, s string, st styled.Style) int {
	for _, r := range s {
		b.setRune(col, r, st)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		for i := 1; i < w; i++ {
			b.grow(col + i)
			b.cells[col+i] = cell{style: st}
		}
		col += w
	}
	return col
}

// writeText places styled text starting at col, resolving Auto runs against
// the context style, and returns the column after it.
func (b *cellBuf) writeText(col int, t styled.Text, context styled.Style) int {
	for _, r := range t.Runs() {
		col = b.writeString(col, r.Text, r.Style.Resolve(context))
	}
	return col
}

// text converts the row to styled text with trailing spaces trimmed.
func (b *cellBuf) text() styled.Text {
	var out styled.Text
	for _, c := range b.cells {
		if c.ch == 0 {
			continue
		}
		out.Push(string(c.ch), c.style)
	}
	return out.TrimRight()
}
