// Package srcpos converts positions between byte offsets and line/column
// coordinates over a single text buffer, caching line boundaries sparsely
// as queries discover them.
//
// Lines and columns are 0-based throughout. Display numbering (1-based,
// offset by a first-line number) is the renderer's concern.
package srcpos

import "fmt"

type locKind uint8

const (
	locLineCol locKind = iota
	locOffset
)

// Location is a caller-supplied position in exactly one of two
// representations: a (line, column) pair or a byte offset. The type makes
// the "both or neither" state unrepresentable; use a ResolvedLocation for
// positions carrying both. The zero value is line 0, column 0.
type Location struct {
	kind   locKind
	line   int
	col    int
	offset int
}

// AtLineCol returns a Location identified by 0-based line and column.
func AtLineCol(line, col int) Location {
	if line < 0 || col < 0 {
		panic(fmt.Sprintf("srcpos: negative line/column %d:%d", line, col))
	}
	return Location{kind: locLineCol, line: line, col: col}
}

// AtOffset returns a Location identified by a byte offset.
func AtOffset(offset int) Location {
	if offset < 0 {
		panic(fmt.Sprintf("srcpos: negative offset %d", offset))
	}
	return Location{kind: locOffset, offset: offset}
}

// ByOffset reports whether the location is identified by a byte offset.
func (l Location) ByOffset() bool {
	return l.kind == locOffset
}

// LineCol returns the line and column. It panics if the location is
// identified by a byte offset; that is a programmer error, not input error.
func (l Location) LineCol() (line, col int) {
	if l.kind != locLineCol {
		panic("srcpos: LineCol called on a byte-offset Location")
	}
	return l.line, l.col
}

// Offset returns the byte offset. It panics if the location is identified
// by line and column.
func (l Location) Offset() int {
	if l.kind != locOffset {
		panic("srcpos: Offset called on a line/column Location")
	}
	return l.offset
}

func (l Location) String() string {
	if l.kind == locOffset {
		return fmt.Sprintf("@%d", l.offset)
	}
	return fmt.Sprintf("%d:%d", l.line, l.col)
}

// ResolvedLocation carries both representations of one position. Only the
// Resolver produces values of this type, so Line/Col and Offset are always
// mutually consistent for the text they were resolved against.
type ResolvedLocation struct {
	Line   int
	Col    int
	Offset int
}

func (r ResolvedLocation) String() string {
	return fmt.Sprintf("%d:%d@%d", r.Line, r.Col, r.Offset)
}
