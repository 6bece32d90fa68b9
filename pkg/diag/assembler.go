package diag

import (
	"fmt"
	"strings"

	"github.com/yaklabco/annotate/pkg/annotate"
	"github.com/yaklabco/annotate/pkg/render"
	"github.com/yaklabco/annotate/pkg/srcpos"
	"github.com/yaklabco/annotate/pkg/styled"
)

// Assembler stitches headers, annotation diagrams and patch output into
// complete diagnostics with a line-number column shared across all of a
// diagnostic's sources.
type Assembler struct {
	opts render.Options
}

// NewAssembler returns an assembler rendering with the given options.
func NewAssembler(opts render.Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble renders one diagnostic as display rows.
func (a *Assembler) Assemble(d *Diagnostic) []styled.Text {
	opts := a.opts
	if opts.LineNumWidth == 0 {
		opts.LineNumWidth = a.numberWidth(d)
	}

	rows := []styled.Text{a.header(d)}
	for i, src := range d.Sources {
		if row, ok := a.originRow(src, opts.LineNumWidth, i > 0); ok {
			rows = append(rows, row)
		}
		rows = append(rows, render.Annotations(src, opts)...)
		rows = append(rows, render.Patches(src, opts)...)
	}
	return rows
}

// AssembleAll renders several diagnostics separated by blank rows.
func (a *Assembler) AssembleAll(ds []*Diagnostic) []styled.Text {
	var rows []styled.Text
	for i, d := range ds {
		if i > 0 {
			rows = append(rows, styled.Text{})
		}
		rows = append(rows, a.Assemble(d)...)
	}
	return rows
}

// header renders "{severity}[{code}]: {message}".
func (a *Assembler) header(d *Diagnostic) styled.Text {
	var t styled.Text
	t.Push(d.Severity.String(), d.Severity.Style())
	if d.Code != "" {
		t.Push("[", d.Severity.Style())
		t.Push(d.Code, d.Severity.Style())
		t.Push("]", d.Severity.Style())
	}
	t.Push(": ", styled.Header.Style())
	t.Append(d.Message.Resolve(styled.Header.Style()))
	return t
}

// originRow renders the "--> origin:line:col" row pointing at the
// source's first annotated location. Continuation sources use ":::" the
// way follow-on files are introduced in compiler output.
func (a *Assembler) originRow(src *annotate.Source, width int, continuation bool) (styled.Text, bool) {
	if src.Origin == "" {
		return styled.Text{}, false
	}
	arrow := "--> "
	if continuation {
		arrow = "::: "
	}
	var t styled.Text
	t.Push(strings.Repeat(" ", width), styled.SourceText.Style())
	t.Push(arrow, styled.Separator.Style())
	label := src.Origin
	if loc, ok := firstLocation(src); ok {
		label = fmt.Sprintf("%s:%d:%d", src.Origin, src.FirstLine+loc.Line, loc.Col+1)
	}
	t.Push(label, styled.Origin.Style())
	return t, true
}

// firstLocation picks the location the origin row points at: the first
// primary span, else the first secondary span, else the first patch.
func firstLocation(src *annotate.Source) (srcpos.ResolvedLocation, bool) {
	res := src.Resolver()
	if len(src.Primary) > 0 {
		return res.Fill(src.Primary[0].Beg), true
	}
	if len(src.Secondary) > 0 {
		return res.Fill(src.Secondary[0].Beg), true
	}
	if len(src.Patches) > 0 {
		return res.Fill(src.Patches[0].Beg), true
	}
	return srcpos.ResolvedLocation{}, false
}

// numberWidth sizes the line-number column to the largest line any of the
// diagnostic's spans or patches touches.
func (a *Assembler) numberWidth(d *Diagnostic) int {
	width := 1
	for _, src := range d.Sources {
		res := src.Resolver()
		max := 0
		visit := func(loc srcpos.ResolvedLocation) {
			if loc.Line > max {
				max = loc.Line
			}
		}
		for _, sp := range src.Primary {
			visit(res.Fill(sp.Beg))
			visit(res.Fill(sp.End))
		}
		for _, sp := range src.Secondary {
			visit(res.Fill(sp.Beg))
			visit(res.Fill(sp.End))
		}
		for _, p := range src.Patches {
			visit(res.Fill(p.Beg))
			visit(res.Fill(p.End))
		}
		if w := len(fmt.Sprintf("%d", src.FirstLine+max)); w > width {
			width = w
		}
	}
	return width
}
