package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/annotate/internal/logging"
	"github.com/yaklabco/annotate/internal/ui/pretty"
	"github.com/yaklabco/annotate/pkg/annotate"
	"github.com/yaklabco/annotate/pkg/diag"
	"github.com/yaklabco/annotate/pkg/render"
	"github.com/yaklabco/annotate/pkg/srcpos"
	"github.com/yaklabco/annotate/pkg/styled"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

type renderFlags struct {
	config         string
	output         string
	strict         bool
	labelPosition  string
	numbering      string
	align          string
	tabWidth       int
	maxMultiline   int
	maxUnannotated int
	maxInline      int
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <diagnostics.yaml>",
		Short: "Render diagnostics described in a YAML document",
		Long:  renderLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.config, "config", "",
		"read render settings from a YAML file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "-",
		"write output to file instead of stdout")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"exit nonzero on warnings as well as errors")
	cmd.Flags().StringVar(&flags.labelPosition, "label-position", "right",
		"place colliding labels to the right or left of their spans")
	cmd.Flags().StringVar(&flags.numbering, "numbering", "after",
		"number inserted lines by position after or before the patch")
	cmd.Flags().StringVar(&flags.align, "align", "right",
		"align line numbers right or left")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 4, "tab stop width")
	cmd.Flags().IntVar(&flags.maxMultiline, "max-multiline-lines", 5,
		"lines shown of a multi-line span before folding")
	cmd.Flags().IntVar(&flags.maxUnannotated, "max-unannotated-lines", 2,
		"unannotated lines shown between spans before eliding")
	cmd.Flags().IntVar(&flags.maxInline, "max-inline-replacement", 16,
		"largest patched width rendered inline rather than as a diff")

	return cmd
}

const renderLongDescription = `Render diagnostics described in a YAML document.

The document lists diagnostics, each with a severity, an optional code, a
message and one or more annotated sources. Sources reference a file or
carry their text inline, and hold labeled primary and secondary spans
plus suggested patches.

Examples:
  annotate render diagnostics.yaml
  annotate render diagnostics.yaml --strict
  annotate render diagnostics.yaml -o report.txt --color never
  annotate render diagnostics.yaml --numbering before`

// Document schema.

type batchDocument struct {
	Diagnostics []diagnosticSpec `yaml:"diagnostics"`
}

type diagnosticSpec struct {
	Severity string       `yaml:"severity"`
	Code     string       `yaml:"code"`
	Message  string       `yaml:"message"`
	Sources  []sourceSpec `yaml:"sources"`
}

type sourceSpec struct {
	Origin    string      `yaml:"origin"`
	File      string      `yaml:"file"`
	Text      string      `yaml:"text"`
	FirstLine int         `yaml:"first_line"`
	Primary   []spanSpec  `yaml:"primary"`
	Secondary []spanSpec  `yaml:"secondary"`
	Patches   []patchSpec `yaml:"patches"`
}

type spanSpec struct {
	Start locSpec `yaml:"start"`
	End   locSpec `yaml:"end"`
	Label string  `yaml:"label"`
}

type patchSpec struct {
	Start       locSpec `yaml:"start"`
	End         locSpec `yaml:"end"`
	Replacement string  `yaml:"replacement"`
}

type locSpec struct {
	Line   *int `yaml:"line"`
	Col    *int `yaml:"col"`
	Offset *int `yaml:"offset"`
}

// location converts a document location to an internal one. Lines and
// columns in the document are 1-based display values; offsets are byte
// offsets.
func (l locSpec) location(firstLine int) (srcpos.Location, error) {
	if l.Offset != nil {
		if l.Line != nil || l.Col != nil {
			return srcpos.Location{}, fmt.Errorf("location has both offset and line/col")
		}
		return srcpos.AtOffset(*l.Offset), nil
	}
	if l.Line == nil {
		return srcpos.Location{}, fmt.Errorf("location needs line or offset")
	}
	col := 1
	if l.Col != nil {
		col = *l.Col
	}
	line := *l.Line - firstLine
	if line < 0 || col < 1 {
		return srcpos.Location{}, fmt.Errorf("location %d:%d out of range", *l.Line, col)
	}
	return srcpos.AtLineCol(line, col-1), nil
}

func runRender(cmd *cobra.Command, path string, flags *renderFlags) error {
	logger := logging.Default()

	if flags.config != "" {
		cfg, err := loadRenderConfig(flags.config)
		if err != nil {
			return &exitError{code: ExitIOError, err: err}
		}
		cfg.apply(flags, cmd.Flags().Changed)
	}

	opts, err := renderOptions(flags)
	if err != nil {
		return err
	}

	doc, err := loadDocument(path)
	if err != nil {
		return &exitError{code: ExitIOError, err: err}
	}

	diagnostics, err := buildDiagnostics(doc)
	if err != nil {
		return &exitError{code: ExitInputError, err: err}
	}
	logger.Debug("document loaded",
		logging.FieldInput, path,
		logging.FieldDiagnostics, len(diagnostics),
	)

	out := cmd.OutOrStdout()
	var closer io.Closer
	if flags.output != "-" && flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		out = f
		closer = f
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	colorEnabled := pretty.IsColorEnabled(colorMode, out)
	logger.Debug("rendering",
		logging.FieldColor, colorEnabled,
		logging.FieldOutput, flags.output,
	)

	rows := diag.NewAssembler(opts).AssembleAll(diagnostics)
	rows = truncateRows(rows, terminalWidth(out))

	writer := pretty.NewWriter(out, pretty.NewStyles(colorEnabled))
	if err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close output file: %w", err)
		}
	}

	if code := ExitCodeFromDiagnostics(diagnostics, flags.strict); code != ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}

func renderOptions(flags *renderFlags) (render.Options, error) {
	opts := render.DefaultOptions()

	switch flags.labelPosition {
	case "right", "":
		opts.LabelPosition = render.LabelRight
	case "left":
		opts.LabelPosition = render.LabelLeft
	default:
		return opts, fmt.Errorf("invalid label position %q", flags.labelPosition)
	}
	switch flags.numbering {
	case "after", "":
		opts.PatchNumbering = render.AfterPatch
	case "before":
		opts.PatchNumbering = render.BeforePatch
	default:
		return opts, fmt.Errorf("invalid numbering %q", flags.numbering)
	}
	switch flags.align {
	case "right", "":
		opts.LineNumAlignment = render.AlignRight
	case "left":
		opts.LineNumAlignment = render.AlignLeft
	default:
		return opts, fmt.Errorf("invalid alignment %q", flags.align)
	}

	opts.TabWidth = flags.tabWidth
	opts.MaxMultilineLines = flags.maxMultiline
	opts.MaxUnannotatedLines = flags.maxUnannotated
	opts.MaxInlineReplacementLength = flags.maxInline
	return opts, nil
}

// loadDocument reads and decodes the diagnostics document, rejecting
// unknown fields.
func loadDocument(path string) (*batchDocument, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read diagnostics document: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var doc batchDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode diagnostics document: %w", err)
	}
	return &doc, nil
}

// buildDiagnostics converts the document into renderable diagnostics.
// Sources referencing the same file share one position resolver.
func buildDiagnostics(doc *batchDocument) ([]*diag.Diagnostic, error) {
	resolvers := map[string]*srcpos.Resolver{}

	var out []*diag.Diagnostic
	for i, ds := range doc.Diagnostics {
		severity, err := parseSeverity(ds.Severity)
		if err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", i+1, err)
		}
		d := diag.New(severity, ds.Message).WithCode(ds.Code)

		for j, ss := range ds.Sources {
			src, err := buildSource(ss, resolvers)
			if err != nil {
				return nil, fmt.Errorf("diagnostic %d source %d: %w", i+1, j+1, err)
			}
			d.AddSource(src)
		}
		out = append(out, d)
	}
	return out, nil
}

func buildSource(ss sourceSpec, resolvers map[string]*srcpos.Resolver) (*annotate.Source, error) {
	var src *annotate.Source
	switch {
	case ss.File != "" && ss.Text != "":
		return nil, fmt.Errorf("source has both file and text")
	case ss.File != "":
		origin := ss.Origin
		if origin == "" {
			origin = ss.File
		}
		if res, ok := resolvers[ss.File]; ok {
			src = annotate.NewSharedSource(res.Text(), origin, res)
		} else {
			data, err := os.ReadFile(ss.File)
			if err != nil {
				return nil, fmt.Errorf("read source file: %w", err)
			}
			src = annotate.NewSource(string(data), origin)
			resolvers[ss.File] = src.Resolver()
		}
	case ss.Text != "":
		src = annotate.NewSource(ss.Text, ss.Origin)
	default:
		return nil, fmt.Errorf("source needs file or text")
	}

	firstLine := ss.FirstLine
	if firstLine == 0 {
		firstLine = 1
	}
	src.WithFirstLine(firstLine)

	addSpans := func(specs []spanSpec, primary bool) error {
		for _, sp := range specs {
			beg, err := sp.Start.location(firstLine)
			if err != nil {
				return err
			}
			end, err := sp.End.location(firstLine)
			if err != nil {
				return err
			}
			label := styled.Plain(sp.Label)
			if primary {
				src.AddPrimary(beg, end, label)
			} else {
				src.AddSecondary(beg, end, label)
			}
		}
		return nil
	}
	if err := addSpans(ss.Primary, true); err != nil {
		return nil, err
	}
	if err := addSpans(ss.Secondary, false); err != nil {
		return nil, err
	}

	for _, ps := range ss.Patches {
		beg, err := ps.Start.location(firstLine)
		if err != nil {
			return nil, err
		}
		end, err := ps.End.location(firstLine)
		if err != nil {
			return nil, err
		}
		src.AddPatch(beg, end, ps.Replacement)
	}
	return src, nil
}

func parseSeverity(s string) (diag.Severity, error) {
	switch s {
	case "info":
		return diag.Info, nil
	case "warning", "warn":
		return diag.Warning, nil
	case "error", "":
		return diag.Error, nil
	default:
		return diag.Error, fmt.Errorf("invalid severity %q", s)
	}
}

// terminalWidth attempts to get the terminal width from the writer.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// truncateRows trims rows wider than the terminal so diagrams never wrap.
func truncateRows(rows []styled.Text, width int) []styled.Text {
	if width <= 0 {
		return rows
	}
	out := make([]styled.Text, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Truncate(width))
	}
	return out
}

// exitError carries a process exit code through Cobra's error return,
// optionally wrapping the failure that produced it.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// ExitCode extracts the exit code from an error returned by a command,
// mapping plain errors to an internal error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitInternalError
}
