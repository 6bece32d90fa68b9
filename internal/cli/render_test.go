package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/annotate/pkg/srcpos"
)

// execute runs the root command with args and returns stdout and the
// command error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(BuildInfo{Version: "test"})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderInlineSource(t *testing.T) {
	doc := writeFile(t, "diag.yaml", `diagnostics:
  - severity: error
    code: E0308
    message: mismatched types
    sources:
      - origin: src/main.rs
        text: "let x: i32 = \"hi\";\n"
        primary:
          - start: {offset: 13}
            end: {offset: 17}
            label: expected i32
`)

	out, err := execute(t, "render", doc, "--color", "never")
	assert.Equal(t, ExitErrors, ExitCode(err))

	want := "error[E0308]: mismatched types\n" +
		" --> src/main.rs:1:14\n" +
		"1 | let x: i32 = \"hi\";\n" +
		"  |              ^^^^ expected i32\n"
	assert.Equal(t, want, out)
}

func TestRenderFileSource(t *testing.T) {
	src := writeFile(t, "main.rs", "fn main() {\n    let x = 1;\n}\n")
	doc := writeFile(t, "diag.yaml", `diagnostics:
  - severity: warning
    message: unused variable
    sources:
      - file: `+src+`
        origin: main.rs
        primary:
          - start: {line: 2, col: 9}
            end: {line: 2, col: 14}
            label: declared here
`)

	out, err := execute(t, "render", doc, "--color", "never")
	require.NoError(t, err)

	want := "warning: unused variable\n" +
		" --> main.rs:2:9\n" +
		"2 |     let x = 1;\n" +
		"  |         ^^^^^ declared here\n"
	assert.Equal(t, want, out)
}

func TestRenderStrictWarnings(t *testing.T) {
	doc := writeFile(t, "diag.yaml", `diagnostics:
  - severity: warning
    message: something odd
`)

	_, err := execute(t, "render", doc, "--color", "never", "--strict")
	assert.Equal(t, ExitWarnings, ExitCode(err))
}

func TestRenderMissingDocument(t *testing.T) {
	_, err := execute(t, "render", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, ExitIOError, ExitCode(err))
}

func TestRenderInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "bad severity",
			doc: `diagnostics:
  - severity: catastrophic
    message: m
`,
		},
		{
			name: "source without content",
			doc: `diagnostics:
  - severity: error
    message: m
    sources:
      - origin: a.txt
`,
		},
		{
			name: "location with offset and line",
			doc: `diagnostics:
  - severity: error
    message: m
    sources:
      - text: "abc\n"
        primary:
          - start: {offset: 0, line: 1}
            end: {offset: 2}
`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := writeFile(t, "diag.yaml", test.doc)
			_, err := execute(t, "render", doc, "--color", "never")
			assert.Equal(t, ExitInputError, ExitCode(err))
		})
	}
}

func TestRenderUnknownDocumentField(t *testing.T) {
	doc := writeFile(t, "diag.yaml", `diagnostics:
  - severity: error
    message: m
    bogus: field
`)

	_, err := execute(t, "render", doc)
	assert.Equal(t, ExitIOError, ExitCode(err))
}

func TestRenderOutputFile(t *testing.T) {
	doc := writeFile(t, "diag.yaml", `diagnostics:
  - severity: info
    message: just saying
`)
	outPath := filepath.Join(t.TempDir(), "report.txt")

	stdout, err := execute(t, "render", doc, "--color", "never", "-o", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "info: just saying\n", string(data))
}

func TestLocSpecLocation(t *testing.T) {
	t.Parallel()

	intp := func(n int) *int { return &n }

	tests := []struct {
		name      string
		spec      locSpec
		firstLine int
		want      srcpos.Location
		wantErr   bool
	}{
		{
			name: "offset",
			spec: locSpec{Offset: intp(7)},
			want: srcpos.AtOffset(7),
		},
		{
			name:      "line and col",
			spec:      locSpec{Line: intp(3), Col: intp(5)},
			firstLine: 1,
			want:      srcpos.AtLineCol(2, 4),
		},
		{
			name:      "col defaults to 1",
			spec:      locSpec{Line: intp(1)},
			firstLine: 1,
			want:      srcpos.AtLineCol(0, 0),
		},
		{
			name:      "first line offsets display lines",
			spec:      locSpec{Line: intp(100), Col: intp(1)},
			firstLine: 99,
			want:      srcpos.AtLineCol(1, 0),
		},
		{
			name:    "offset with line rejected",
			spec:    locSpec{Offset: intp(0), Line: intp(1)},
			wantErr: true,
		},
		{
			name:    "neither offset nor line",
			spec:    locSpec{Col: intp(1)},
			wantErr: true,
		},
		{
			name:      "line before first line rejected",
			spec:      locSpec{Line: intp(1)},
			firstLine: 10,
			wantErr:   true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := test.spec.location(test.firstLine)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "info", want: "info"},
		{in: "warning", want: "warning"},
		{in: "warn", want: "warning"},
		{in: "error", want: "error"},
		{in: "", want: "error"},
		{in: "fatal", wantErr: true},
	}

	for _, test := range tests {
		got, err := parseSeverity(test.in)
		if test.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, test.want, got.String())
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitInternalError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitErrors, ExitCode(&exitError{code: ExitErrors}))
}

func TestRenderOptionsValidation(t *testing.T) {
	t.Parallel()

	_, err := renderOptions(&renderFlags{labelPosition: "sideways", numbering: "after", align: "right"})
	assert.Error(t, err)

	_, err = renderOptions(&renderFlags{labelPosition: "right", numbering: "during", align: "right"})
	assert.Error(t, err)

	_, err = renderOptions(&renderFlags{labelPosition: "left", numbering: "before", align: "left"})
	assert.NoError(t, err)
}
