package handler

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/pkg/etag"
)

// emptyResponse represents an empty HTTP response with only a status code
type emptyResponse struct {
	status int
}

// Render writes the status code without any body content
func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty creates an empty response with status 204 (No Content).
func Empty() Response {
	return emptyResponse{
		status: http.StatusNoContent,
	}
}

// EmptyWithStatus creates an empty response with a custom status code.
//
//	return handler.EmptyWithStatus(http.StatusAccepted)
func EmptyWithStatus(status int) Response {
	return emptyResponse{
		status: status,
	}
}

type notModifiedResponse struct {
	result etag.Result
}

func (n notModifiedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	n.result.Apply(w.Header())
	w.WriteHeader(http.StatusNotModified)
	return nil
}

// NotModified answers a conditional GET with 304 and the cache validators
// of result.
//
// Example:
//
//	res := etag.Validate(ctx.Request(), etag.Key{"id": e.ID, "modified": e.UpdatedAt})
//	if res.NotModified {
//		return handler.NotModified(res)
//	}
//	return handler.Cached(res, handler.JSON(e))
func NotModified(result etag.Result) Response {
	return notModifiedResponse{result: result}
}

type cachedResponse struct {
	result etag.Result
	next   Response
}

func (c cachedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	c.result.Apply(w.Header())
	return c.next.Render(w, r)
}

// Cached attaches the validators of result to next. When result is not
// modified it behaves like NotModified.
func Cached(result etag.Result, next Response) Response {
	if result.NotModified {
		return NotModified(result)
	}
	return cachedResponse{result: result, next: next}
}
