package pretty

import (
	"bufio"
	"io"

	"github.com/yaklabco/annotate/pkg/styled"
)

// bufWriterSize is the buffer size used when writing rendered rows.
const bufWriterSize = 64 * 1024

// Writer renders styled rows to an output stream.
type Writer struct {
	styles *Styles
	out    *bufio.Writer
}

// NewWriter creates a Writer rendering with the given styles.
func NewWriter(out io.Writer, styles *Styles) *Writer {
	return &Writer{styles: styles, out: bufio.NewWriterSize(out, bufWriterSize)}
}

// WriteRow writes one rendered row followed by a newline.
func (w *Writer) WriteRow(row styled.Text) error {
	for _, run := range row.Runs() {
		if _, err := w.out.WriteString(w.styles.For(run.Style).Render(run.Text)); err != nil {
			return err
		}
	}
	return w.out.WriteByte('\n')
}

// WriteRows writes all rows and flushes the buffer.
func (w *Writer) WriteRows(rows []styled.Text) error {
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return w.out.Flush()
}
