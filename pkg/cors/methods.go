package cors

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// MethodResolver returns the methods the requested resource accepts.
type MethodResolver func(r *http.Request) []string

var probeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodTrace,
}

// ChiMethods resolves allowed methods by matching the request path against
// routes for every standard method. HEAD is implied by GET and OPTIONS is
// always allowed. A nil routes falls back to the chi routing table attached
// to the request.
func ChiMethods(routes chi.Routes) MethodResolver {
	return func(r *http.Request) []string {
		rt := routes
		if rt == nil {
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				rt = rctx.Routes
			}
		}

		allowed := []string{http.MethodOptions}
		if rt == nil {
			return allowed
		}

		path := r.URL.RawPath
		if path == "" {
			path = r.URL.Path
		}

		for _, m := range probeMethods {
			if rt.Match(chi.NewRouteContext(), m, path) {
				allowed = append(allowed, m)
				if m == http.MethodGet {
					allowed = append(allowed, http.MethodHead)
				}
			}
		}
		if !slices.Contains(allowed, http.MethodHead) && rt.Match(chi.NewRouteContext(), http.MethodHead, path) {
			allowed = append(allowed, http.MethodHead)
		}

		slices.Sort(allowed)
		return allowed
	}
}
