package styled

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Run is a span of text presented in a single style.
type Run struct {
	Text  string
	Style Style
}

// Text is a sequence of styled runs forming one logical string. The zero
// value is empty and ready to use.
type Text struct {
	runs []Run
}

// Plain returns a Text with a single run in the Auto style.
func Plain(text string) Text {
	if text == "" {
		return Text{}
	}
	return Text{runs: []Run{{Text: text, Style: Style{}}}}
}

// Styled returns a Text with a single run in the given style.
func Styled(text string, style Style) Text {
	if text == "" {
		return Text{}
	}
	return Text{runs: []Run{{Text: text, Style: style}}}
}

// Push appends a run. Adjacent runs with equal styles are coalesced.
func (t *Text) Push(text string, style Style) {
	if text == "" {
		return
	}
	if n := len(t.runs); n > 0 && t.runs[n-1].Style == style {
		t.runs[n-1].Text += text
		return
	}
	t.runs = append(t.runs, Run{Text: text, Style: style})
}

// Append appends all runs of other.
func (t *Text) Append(other Text) {
	for _, r := range other.runs {
		t.Push(r.Text, r.Style)
	}
}

// Runs returns the underlying runs. The slice must not be mutated.
func (t Text) Runs() []Run {
	return t.runs
}

// String returns the plain text with styling discarded.
func (t Text) String() string {
	var b strings.Builder
	for _, r := range t.runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Empty reports whether the text contains no characters.
func (t Text) Empty() bool {
	for _, r := range t.runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Width returns the display width of the text. Wide glyphs count as two
// columns.
func (t Text) Width() int {
	var w int
	for _, r := range t.runs {
		w += runewidth.StringWidth(r.Text)
	}
	return w
}

// Lines splits the text on newlines, preserving run styles.
func (t Text) Lines() []Text {
	lines := []Text{{}}
	for _, r := range t.runs {
		parts := strings.Split(r.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, Text{})
			}
			lines[len(lines)-1].Push(part, r.Style)
		}
	}
	return lines
}

// Resolve returns a copy with every Auto run replaced by the context style.
func (t Text) Resolve(context Style) Text {
	var out Text
	for _, r := range t.runs {
		out.Push(r.Text, r.Style.Resolve(context))
	}
	return out
}

// Truncate returns a copy cut down to at most width display columns.
// A wide glyph straddling the cut is dropped entirely.
func (t Text) Truncate(width int) Text {
	if t.Width() <= width {
		return t
	}
	var out Text
	col := 0
	for _, run := range t.runs {
		for i, r := range run.Text {
			w := runewidth.RuneWidth(r)
			if col+w > width {
				out.Push(run.Text[:i], run.Style)
				return out
			}
			col += w
		}
		out.Push(run.Text, run.Style)
	}
	return out
}

// TrimRight returns a copy with trailing spaces removed.
func (t Text) TrimRight() Text {
	runs := append([]Run(nil), t.runs...)
	for len(runs) > 0 {
		last := &runs[len(runs)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		runs = runs[:len(runs)-1]
	}
	return Text{runs: runs}
}
