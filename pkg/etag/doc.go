// Package etag implements conditional GET validation from a cache key.
//
// A Key is a set of values that together determine the content of a
// response: typically the identifiers and update timestamps of the records
// it was built from. Compute hashes the key deterministically (SHA-1 over the
// items sorted by name) so equal keys always produce equal tags.
//
// Validate combines the tag with the request's If-None-Match and
// If-Modified-Since headers. The outcome is a Result value rather than an
// error, so handlers branch explicitly:
//
//	res := etag.Validate(r, etag.Key{"id": e.ID, "modified": e.UpdatedAt})
//	if res.NotModified {
//		res.Apply(w.Header())
//		w.WriteHeader(http.StatusNotModified)
//		return
//	}
//	res.Apply(w.Header())
//	// render the body
//
// The reserved "modified" key, when it holds a time.Time, is used as the
// Last-Modified value. Only GET requests are ever reported as not modified;
// for other methods the validators are returned without looking at the
// conditional headers.
package etag
