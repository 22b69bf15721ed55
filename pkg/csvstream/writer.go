package csvstream

import (
	"encoding/csv"
	"io"
)

// Writer writes rows as CSV. The header is derived from the first row.
type Writer struct {
	w      *csv.Writer
	header []string
	rows   int
}

// NewWriter creates a Writer on top of w. Lines end with CRLF as in RFC 4180.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return &Writer{w: cw}
}

// Write converts and writes a single row, emitting the header first if this
// is the first row.
func (w *Writer) Write(row Row) error {
	converted := make(map[string]string, len(row))
	columns := make([]string, 0, len(row))
	for _, f := range row {
		s, ok := cell(f.Value)
		if !ok {
			continue
		}
		if _, dup := converted[f.Column]; !dup {
			columns = append(columns, f.Column)
		}
		converted[f.Column] = s
	}

	if w.header == nil {
		w.header = columns
		if err := w.w.Write(w.header); err != nil {
			return err
		}
	}

	record := make([]string, len(w.header))
	for i, col := range w.header {
		record[i] = converted[col]
	}
	if err := w.w.Write(record); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Header returns the header written so far, nil before the first row.
func (w *Writer) Header() []string {
	return w.header
}

// Rows returns the number of data rows written.
func (w *Writer) Rows() int {
	return w.rows
}

// Copy drains src into dst and flushes after every row when flush is not
// nil. It returns the number of data rows written.
func Copy(dst io.Writer, src Source, flush func()) (int, error) {
	w := NewWriter(dst)
	for row, err := range src {
		if err != nil {
			return w.Rows(), err
		}
		if err := w.Write(row); err != nil {
			return w.Rows(), err
		}
		if err := w.Flush(); err != nil {
			return w.Rows(), err
		}
		if flush != nil {
			flush()
		}
	}
	return w.Rows(), nil
}
