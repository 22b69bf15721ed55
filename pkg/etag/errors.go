package etag

import "errors"

// ErrNotModified is returned by Result.Err when the client copy is current.
var ErrNotModified = errors.New("resource not modified")
