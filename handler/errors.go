package handler

import "errors"

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrBindingSkipped is returned by binders that do not apply to a request
	ErrBindingSkipped = errors.New("binder not applicable")
	// ErrStreamInterrupted indicates a streamed body failed after the status line was sent
	ErrStreamInterrupted = errors.New("response stream interrupted")
	// ErrInvalidCallback indicates a JSONP callback that is not a JavaScript identifier
	ErrInvalidCallback = NewHTTPError(400, "invalid_callback")
)
