package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// advanceCol returns the display column after placing r at col. Tabs jump
// to the next tab stop; wide glyphs occupy two columns.
func advanceCol(col int, r rune, tabWidth int) int {
	if r == '\t' {
		return col + tabWidth - col%tabWidth
	}
	return col + runewidth.RuneWidth(r)
}

// displayCol returns the display column of the byte at byteIdx in content.
// A byteIdx inside a multi-byte rune resolves to that rune's column;
// byteIdx at or past the end returns the column after the last rune.
func displayCol(content string, byteIdx, tabWidth int) int {
	col := 0
	for i, r := range content {
		if i >= byteIdx {
			return col
		}
		col = advanceCol(col, r, tabWidth)
	}
	return col
}

// lastRuneStart returns the byte index of the rune containing byte end-1,
// so a caret can sit under the final character of a half-open span.
func lastRuneStart(content string, end int) int {
	if end > len(content) {
		end = len(content)
	}
	start := end - 1
	for start > 0 && !isRuneStart(content[start]) {
		start--
	}
	if start < 0 {
		return 0
	}
	return start
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// expandTabs rewrites content with tabs replaced by spaces up to the next
// tab stop, so underline columns line up with what is printed.
func expandTabs(content string, tabWidth int) string {
	return expandTabsFrom(content, 0, tabWidth)
}

// expandTabsFrom is expandTabs for content that starts at a nonzero
// display column.
func expandTabsFrom(content string, col, tabWidth int) string {
	if !strings.ContainsRune(content, '\t') {
		return content
	}
	var b strings.Builder
	for _, r := range content {
		if r == '\t' {
			next := col + tabWidth - col%tabWidth
			for col < next {
				b.WriteByte(' ')
				col++
			}
			continue
		}
		b.WriteRune(r)
		col = advanceCol(col, r, tabWidth)
	}
	return b.String()
}
