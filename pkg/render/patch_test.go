package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/annotate/pkg/annotate"
	"github.com/yaklabco/annotate/pkg/render"
)

func TestPatchesInlineReplacement(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("let x = foo;\n", "x").
		AddPatchRange(8, 11, "bar")

	got := rowStrings(render.Patches(src, render.DefaultOptions()))
	want := []string{
		"1 | let x = bar;",
		"  |         ~~~",
	}
	require.Equal(t, want, got)
}

func TestPatchesInlineInsertion(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("ab;\n", "x").
		AddPatchRange(2, 2, "cd")

	got := rowStrings(render.Patches(src, render.DefaultOptions()))
	want := []string{
		"1 | abcd;",
		"  |   ++",
	}
	require.Equal(t, want, got)
}

func TestPatchesNoPatches(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("unchanged\n", "x")
	require.Empty(t, render.Patches(src, render.DefaultOptions()))
}

func TestPatchesDeletionOfTrailingNewline(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("Hello World\n", "x").
		AddPatchRange(11, 12, "")

	got := rowStrings(render.Patches(src, render.DefaultOptions()))
	want := []string{
		"2 -",
	}
	require.Equal(t, want, got)
}

func TestPatchesAppendPastTrailingNewline(t *testing.T) {
	t.Parallel()

	// An insertion on the hypothetical line past the final newline
	// renders as new content on the line after the last real one.
	src := annotate.NewSource("a\n", "x").
		AddPatchRange(2, 2, "tail")

	got := rowStrings(render.Patches(src, render.DefaultOptions()))
	want := []string{
		"2 -",
		"2 + tail",
	}
	require.Equal(t, want, got)
}

func TestPatchesDeletionAcrossNewline(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("Hello World\n", "x").
		AddPatchRange(10, 12, "")

	got := rowStrings(render.Patches(src, render.DefaultOptions()))
	want := []string{
		"1 - Hello World",
		"2 -",
		"1 + Hello Worl",
	}
	require.Equal(t, want, got)
}

func TestPatchesMultilineReplacement(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("one\ntwo\n", "x").
		AddPatchRange(0, 3, "ONE\nONE+")

	got := rowStrings(render.Patches(src, render.DefaultOptions()))
	want := []string{
		"1 - one",
		"1 + ONE",
		"2 + ONE+",
	}
	require.Equal(t, want, got)
}

func TestPatchesNumberingModes(t *testing.T) {
	t.Parallel()

	// The first patch grows the text by one line; the second patch's
	// numbering shows whether lines count before or after the edit.
	build := func() *annotate.Source {
		return annotate.NewSource("a\nb\nc\nd\n", "x").
			AddPatchRange(0, 1, "x\ny").
			AddPatchRange(4, 5, "z")
	}

	after := render.DefaultOptions()
	got := rowStrings(render.Patches(build(), after))
	want := []string{
		"1 - a",
		"1 + x",
		"2 + y",
		"4 | z",
		"  | ~",
	}
	require.Equal(t, want, got)

	before := render.DefaultOptions()
	before.PatchNumbering = render.BeforePatch
	got = rowStrings(render.Patches(build(), before))
	want = []string{
		"1 - a",
		"1 + x",
		"1 + y",
		"3 | z",
		"  | ~",
	}
	require.Equal(t, want, got)
}

func TestPatchesLongReplacementFallsBackToDiff(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("short\n", "x").
		AddPatchRange(0, 5, "a rather longer replacement")

	got := rowStrings(render.Patches(src, render.DefaultOptions()))
	want := []string{
		"1 - short",
		"1 + a rather longer replacement",
	}
	require.Equal(t, want, got)
}

func TestPatchesOverlapPanics(t *testing.T) {
	t.Parallel()

	src := annotate.NewSource("abcdef\n", "x").
		AddPatchRange(1, 4, "X").
		AddPatchRange(3, 5, "Y")

	require.Panics(t, func() {
		render.Patches(src, render.DefaultOptions())
	})
}
