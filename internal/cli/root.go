// Package cli provides the Cobra command structure for annotate.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/annotate/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root annotate command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Render compiler-style source annotations",
		Long: `annotate renders compiler-style diagnostics: windows of source text
with underlined spans, labels, multi-line brackets, folded and elided
regions, and suggested patches shown inline or as removed/inserted lines.

Diagnostics are described in a YAML document and rendered to the
terminal with optional ANSI color.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
