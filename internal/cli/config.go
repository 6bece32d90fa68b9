package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// renderConfig is the optional YAML render configuration. Every field
// mirrors a render flag; flags given explicitly on the command line win.
type renderConfig struct {
	LabelPosition        string `yaml:"label_position"`
	Numbering            string `yaml:"numbering"`
	Align                string `yaml:"align"`
	TabWidth             int    `yaml:"tab_width"`
	MaxMultilineLines    int    `yaml:"max_multiline_lines"`
	MaxUnannotatedLines  int    `yaml:"max_unannotated_lines"`
	MaxInlineReplacement int    `yaml:"max_inline_replacement"`
}

// loadRenderConfig reads a render configuration file, rejecting unknown
// fields.
func loadRenderConfig(path string) (*renderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg renderConfig
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}
	return &cfg, nil
}

// apply copies configured values onto the flags, skipping any flag the
// user set explicitly.
func (c *renderConfig) apply(flags *renderFlags, changed func(name string) bool) {
	if c.LabelPosition != "" && !changed("label-position") {
		flags.labelPosition = c.LabelPosition
	}
	if c.Numbering != "" && !changed("numbering") {
		flags.numbering = c.Numbering
	}
	if c.Align != "" && !changed("align") {
		flags.align = c.Align
	}
	if c.TabWidth != 0 && !changed("tab-width") {
		flags.tabWidth = c.TabWidth
	}
	if c.MaxMultilineLines != 0 && !changed("max-multiline-lines") {
		flags.maxMultiline = c.MaxMultilineLines
	}
	if c.MaxUnannotatedLines != 0 && !changed("max-unannotated-lines") {
		flags.maxUnannotated = c.MaxUnannotatedLines
	}
	if c.MaxInlineReplacement != 0 && !changed("max-inline-replacement") {
		flags.maxInline = c.MaxInlineReplacement
	}
}
