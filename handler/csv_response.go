package handler

import (
	"errors"
	"maps"
	"net/http"

	"github.com/dmitrymomot/httpkit/pkg/csvstream"
)

type csvResponse struct {
	source   csvstream.Source
	status   int
	headers  http.Header
	filename string
}

// CSVOption configures CSV response
type CSVOption func(*csvResponse)

// WithCSVStatus sets custom HTTP status code
func WithCSVStatus(status int) CSVOption {
	return func(r *csvResponse) {
		r.status = status
	}
}

// WithCSVHeaders adds extra response headers
func WithCSVHeaders(h http.Header) CSVOption {
	return func(r *csvResponse) {
		maps.Copy(r.headers, h)
	}
}

// WithFilename sends the body as an attachment with the given filename.
// Without it no Content-Disposition header is set.
func WithFilename(name string) CSVOption {
	return func(r *csvResponse) {
		r.filename = name
	}
}

// CSV streams rows from source as CSV. The header line is taken
// from the column names of the first row and every row is flushed to the
// client as soon as it is written. An empty source produces an empty body.
// A source error stops the stream; Render then returns ErrStreamInterrupted
// joined with the cause.
//
// Example:
//
//	rows, err := pool.Query(ctx, "SELECT id, name FROM entity")
//	if err != nil {
//		return handler.Error(err)
//	}
//	return handler.CSV(csvstream.FromPgxRows(rows), handler.WithFilename("entities.csv"))
func CSV(source csvstream.Source, opts ...CSVOption) Response {
	r := &csvResponse{
		source:  source,
		status:  http.StatusOK,
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (c *csvResponse) Render(w http.ResponseWriter, r *http.Request) error {
	h := w.Header()
	for k, v := range c.headers {
		h[k] = v
	}
	h.Set("Content-Type", "text/csv")
	if c.filename != "" {
		h.Set("Content-Disposition", "attachment; filename="+c.filename)
	}
	w.WriteHeader(c.status)

	var flush func()
	if f, ok := w.(http.Flusher); ok {
		flush = f.Flush
	}

	if _, err := csvstream.Copy(w, c.source, flush); err != nil {
		return errors.Join(ErrStreamInterrupted, err)
	}
	return nil
}
