package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRenderConfig(t *testing.T) {
	path := writeFile(t, "render.yaml", `label_position: left
tab_width: 2
max_multiline_lines: 3
`)

	cfg, err := loadRenderConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "left", cfg.LabelPosition)
	assert.Equal(t, 2, cfg.TabWidth)
	assert.Equal(t, 3, cfg.MaxMultilineLines)
	assert.Zero(t, cfg.MaxUnannotatedLines)
}

func TestLoadRenderConfigRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "render.yaml", "tab_widht: 2\n")

	_, err := loadRenderConfig(path)
	assert.Error(t, err)
}

func TestLoadRenderConfigMissingFile(t *testing.T) {
	_, err := loadRenderConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRenderConfigApply(t *testing.T) {
	t.Parallel()

	cfg := &renderConfig{LabelPosition: "left", TabWidth: 2, Numbering: "before"}
	flags := &renderFlags{labelPosition: "right", tabWidth: 4, numbering: "after"}

	// The numbering flag was set explicitly, so the config must not
	// override it.
	changed := func(name string) bool { return name == "numbering" }
	cfg.apply(flags, changed)

	assert.Equal(t, "left", flags.labelPosition)
	assert.Equal(t, 2, flags.tabWidth)
	assert.Equal(t, "after", flags.numbering)
}

func TestRenderWithConfigFile(t *testing.T) {
	cfg := writeFile(t, "render.yaml", "tab_width: 2\n")
	doc := writeFile(t, "diag.yaml", `diagnostics:
  - severity: info
    message: note
    sources:
      - origin: a.txt
        text: "\tfoo\n"
        primary:
          - start: {offset: 1}
            end: {offset: 4}
            label: here
`)

	out, err := execute(t, "render", doc, "--color", "never", "--config", cfg)
	require.NoError(t, err)

	want := "info: note\n" +
		" --> a.txt:1:2\n" +
		"1 |   foo\n" +
		"  |   ^^^ here\n"
	assert.Equal(t, want, out)
}
