package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
)

type htmlResponse struct {
	component templ.Component
	status    int
}

// HTMLOption configures HTML response
type HTMLOption func(*htmlResponse)

// WithHTMLStatus sets custom HTTP status code
func WithHTMLStatus(status int) HTMLOption {
	return func(r *htmlResponse) {
		r.status = status
	}
}

// HTML renders a templ component. The component is rendered into a buffer
// first so a failing template still leaves the response untouched.
func HTML(component templ.Component, opts ...HTMLOption) Response {
	r := &htmlResponse{
		component: component,
		status:    http.StatusOK,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (h *htmlResponse) Render(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := h.component.Render(r.Context(), &buf); err != nil {
		return fmt.Errorf("render html component: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(h.status)
	_, err := buf.WriteTo(w)
	return err
}
