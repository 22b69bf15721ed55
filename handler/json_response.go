package handler

import (
	"fmt"
	"maps"
	"net/http"
	"regexp"

	"github.com/dmitrymomot/httpkit/pkg/jsonenc"
)

// CallbackParam is the query parameter holding the JSONP callback name.
const CallbackParam = "callback"

var callbackPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// jsonResponse implements Response for JSON and JSONP rendering
type jsonResponse struct {
	value   any
	status  int
	headers http.Header
	shallow bool
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONHeaders adds extra response headers
func WithJSONHeaders(h http.Header) JSONOption {
	return func(r *jsonResponse) {
		maps.Copy(r.headers, h)
	}
}

// WithShallow encodes entities through their shallow representation.
func WithShallow() JSONOption {
	return func(r *jsonResponse) {
		r.shallow = true
	}
}

// JSON creates a JSON response. Values are normalized by jsonenc, so
// entities, queries, decimals and timestamps are serialized the same way
// everywhere. When the request carries a callback query parameter the body
// is wrapped as JSONP: callback(body).
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{
		value:   v,
		status:  http.StatusOK,
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (j *jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	body, err := jsonenc.New(jsonenc.WithShallow(j.shallow)).Encode(j.value)
	if err != nil {
		return fmt.Errorf("encode json response: %w", err)
	}

	if cb := r.URL.Query().Get(CallbackParam); cb != "" {
		if !callbackPattern.MatchString(cb) {
			return ErrInvalidCallback
		}
		wrapped := make([]byte, 0, len(cb)+len(body)+2)
		wrapped = append(wrapped, cb...)
		wrapped = append(wrapped, '(')
		wrapped = append(wrapped, body...)
		body = append(wrapped, ')')
	}

	h := w.Header()
	for k, v := range j.headers {
		h[k] = v
	}
	h.Set("Content-Type", "application/json")
	w.WriteHeader(j.status)
	_, err = w.Write(body)
	return err
}
