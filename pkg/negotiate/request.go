package negotiate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	// DefaultMaxJSONSize caps JSON request bodies (1MB).
	DefaultMaxJSONSize = 1 << 20
	// DefaultMaxMemory caps in-memory multipart parsing (10MB).
	DefaultMaxMemory = 10 << 20
)

// Content is the decoded request body. Exactly one of JSON and Form is
// meaningful, depending on Format.
type Content struct {
	Format Format
	JSON   any
	Form   url.Values
}

// RequestFormat returns the format of the request body as declared by its
// Content-Type header. Unknown or missing content types default to HTML.
func RequestFormat(r *http.Request) Format {
	if f, ok := Lookup(r.Header.Get("Content-Type")); ok {
		return f
	}
	return FormatHTML
}

// RequestContent decodes the request body. JSON bodies are decoded into
// nested maps, slices and scalars; any other body is parsed as form data and
// returned with all values per key.
func RequestContent(r *http.Request) (Content, error) {
	format := RequestFormat(r)
	if format == FormatJSON {
		data, err := decodeJSON(r)
		if err != nil {
			return Content{}, err
		}
		return Content{Format: format, JSON: data}, nil
	}

	form, err := parseForm(r)
	if err != nil {
		return Content{}, err
	}
	return Content{Format: format, Form: form}, nil
}

func decodeJSON(r *http.Request) (any, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidJSON)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", ErrInvalidJSON, err)
	}
	if len(body) > DefaultMaxJSONSize {
		return nil, fmt.Errorf("%w: request body too large (max %d bytes)", ErrInvalidJSON, DefaultMaxJSONSize)
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return data, nil
}

func parseForm(r *http.Request) (url.Values, error) {
	if mediaTypeOf(r.Header.Get("Content-Type")) == "multipart/form-data" {
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, errors.Join(ErrInvalidForm, err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, errors.Join(ErrInvalidForm, err)
	}

	if r.PostForm == nil {
		return url.Values{}, nil
	}
	return r.PostForm, nil
}
