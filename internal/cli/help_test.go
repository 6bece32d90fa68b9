package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpListsCommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "render")
	assert.Contains(t, out, "version")
	assert.Contains(t, out, "--color")
}

func TestRenderHelpShowsFlags(t *testing.T) {
	out, err := execute(t, "render", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Examples:")
	assert.Contains(t, out, "Flags:")
	assert.Contains(t, out, "--numbering")
	assert.Contains(t, out, "Global Flags:")
}

func TestStyleFlagsWithoutColor(t *testing.T) {
	t.Parallel()

	h := &HelpFormatter{styles: newHelpStyles(false)}
	in := "  -o, --output string   write output to file\n"
	assert.Equal(t, "  -o, --output string   write output to file", h.styleFlags(in))
}
