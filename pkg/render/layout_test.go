package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/annotate/pkg/annotate"
	"github.com/yaklabco/annotate/pkg/render"
	"github.com/yaklabco/annotate/pkg/srcpos"
	"github.com/yaklabco/annotate/pkg/styled"
)

func rowStrings(rows []styled.Text) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.String()
	}
	return out
}

func TestAnnotationsInlineLabel(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("func(args)", "x").
		AddPrimaryRange(0, 4, styled.Plain("a label"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 | func(args)",
		"  | ^^^^ a label",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsNoSpans(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("nothing to see", "x")
	require.Empty(t, render.Annotations(src, render.DefaultOptions()))
}

func TestAnnotationsLabelCollision(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("func(args)", "x").
		AddPrimaryRange(0, 4, styled.Plain("f label")).
		AddSecondaryRange(5, 9, styled.Plain("a label"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 | func(args)",
		"  | ^^^^ ----",
		"  | |    |",
		"  | |    a label",
		"  | f label",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsLabelCollisionLeft(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("func(args)", "x").
		AddPrimaryRange(0, 4, styled.Plain("f label")).
		AddSecondaryRange(5, 9, styled.Plain("a label"))

	opts := render.DefaultOptions()
	opts.LabelPosition = render.LabelLeft

	got := rowStrings(render.Annotations(src, opts))
	want := []string{
		"1 | func(args)",
		"  | ^^^^ ----",
		"  | |    |",
		"  | f label",
		"  |      a label",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsMergedSpans(t *testing.T) {
	t.Parallel()

	// Identical ranges merge into one underline carrying both labels;
	// the merged underline is primary because one member is, and primary
	// labels come first.
	src := annotate.NewSource("func(args)", "x").
		AddSecondaryRange(0, 4, styled.Plain("found here")).
		AddPrimaryRange(0, 4, styled.Plain("expected type"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 | func(args)",
		"  | ^^^^ expected type",
		"  |      found here",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsMergedSpanLabelStyles(t *testing.T) {
	t.Parallel()

	// Labels in a merged group keep the emphasis of the span that
	// contributed them, not the merged underline's.
	src := annotate.NewSource("func(args)", "x").
		AddSecondaryRange(0, 4, styled.Plain("found here")).
		AddPrimaryRange(0, 4, styled.Plain("expected type"))

	rows := render.Annotations(src, render.DefaultOptions())
	require.Len(t, rows, 3)
	require.Equal(t, styled.PrimaryLabel.Style(), runStyle(t, rows[1], "expected type"))
	require.Equal(t, styled.SecondaryLabel.Style(), runStyle(t, rows[2], "found here"))
}

// runStyle returns the style of the run holding exactly the given text.
func runStyle(t *testing.T, row styled.Text, text string) styled.Style {
	t.Helper()
	for _, run := range row.Runs() {
		if run.Text == text {
			return run.Style
		}
	}
	t.Fatalf("row %q has no run %q", row.String(), text)
	return styled.Style{}
}

func TestAnnotationsMultiline(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("func( args\n)", "x").
		AddPrimaryRange(0, 12, styled.Plain("label"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 |   func( args",
		"  |  _^",
		"2 | | )",
		"  | |_^ label",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsNestedMultiline(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("aaa\nbbb\nccc\n", "x").
		AddPrimary(srcpos.AtLineCol(0, 0), srcpos.AtLineCol(2, 3), styled.Plain("outer")).
		AddSecondary(srcpos.AtLineCol(1, 0), srcpos.AtLineCol(2, 1), styled.Plain("inner"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 |     aaa",
		"  |  ___^",
		"2 | |   bbb",
		"  | |  _-",
		"3 | | | ccc",
		"  | | |_- inner",
		"  | |_____^ outer",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsFolding(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7\n", "x").
		AddPrimary(srcpos.AtLineCol(0, 0), srcpos.AtLineCol(7, 2), styled.Plain("spans it all"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 |   l0",
		"  |  _^",
		"2 | | l1",
		"3 | | l2",
		"... |",
		"7 | | l6",
		"8 | | l7",
		"  | |__^ spans it all",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsShortGapShown(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("l0\nl1\nl2\n", "x").
		AddPrimary(srcpos.AtLineCol(0, 0), srcpos.AtLineCol(0, 2), styled.Plain("first")).
		AddPrimary(srcpos.AtLineCol(2, 0), srcpos.AtLineCol(2, 2), styled.Plain("second"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 | l0",
		"  | ^^ first",
		"2 | l1",
		"3 | l2",
		"  | ^^ second",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsLongGapElided(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("l0\nl1\nl2\nl3\nl4\n", "x").
		AddPrimary(srcpos.AtLineCol(0, 0), srcpos.AtLineCol(0, 2), styled.Plain("first")).
		AddPrimary(srcpos.AtLineCol(4, 0), srcpos.AtLineCol(4, 2), styled.Plain("second"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 | l0",
		"  | ^^ first",
		"...",
		"5 | l4",
		"  | ^^ second",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsFirstLine(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("first\nsecond\n", "x").
		WithFirstLine(99).
		AddPrimary(srcpos.AtLineCol(1, 0), srcpos.AtLineCol(1, 6), styled.Plain("here"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"100 | second",
		"    | ^^^^^^ here",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsTabExpansion(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("\tx\n", "x").
		AddPrimary(srcpos.AtLineCol(0, 1), srcpos.AtLineCol(0, 2), styled.Plain("here"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 |     x",
		"  |     ^ here",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsWideGlyphs(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("日x\n", "x").
		AddPrimaryRange(3, 4, styled.Plain("ascii"))

	got := rowStrings(render.Annotations(src, render.DefaultOptions()))
	want := []string{
		"1 | 日x",
		"  |   ^ ascii",
	}
	require.Equal(t, want, got)
}

func TestAnnotationsLeftAlignedNumbers(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n", "x").
		AddPrimary(srcpos.AtLineCol(9, 0), srcpos.AtLineCol(9, 1), styled.Plain("last"))

	opts := render.DefaultOptions()
	opts.LineNumAlignment = render.AlignLeft

	got := rowStrings(render.Annotations(src, opts))
	want := []string{
		"10 | j",
		"   | ^ last",
	}
	require.Equal(t, want, got)
}
