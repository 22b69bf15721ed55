package negotiate

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/httpkit/pkg/logger"
)

// FormatParam is the URL parameter read from the routing table.
const FormatParam = "format"

// ResponseFormat decides which representation to send back.
//
// A "format" URL parameter matched against routes takes precedence when it
// names a known format. Otherwise the Accept header is negotiated against
// MIMETypes. If routes is nil, the chi routing table attached to the request
// is used, if any. A path that matches no route is not an error.
//
// The empty Format is returned when neither source yields a known token.
func ResponseFormat(r *http.Request, routes chi.Routes) Format {
	if f := PathFormat(r, routes); f.Valid() {
		return f
	}
	return AcceptFormat(r)
}

// PathFormat returns the raw "format" URL parameter for the request path, or
// the empty Format when no route matches or the route declares no such
// parameter. The value is not validated.
func PathFormat(r *http.Request, routes chi.Routes) Format {
	if routes == nil {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			routes = rctx.Routes
		}
	}
	if routes == nil {
		return ""
	}

	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}

	rctx := chi.NewRouteContext()
	if !routes.Match(rctx, r.Method, path) {
		return ""
	}
	return Format(rctx.URLParam(FormatParam))
}

// AcceptFormat negotiates the Accept header against MIMETypes.
func AcceptFormat(r *http.Request) Format {
	offers := make([]string, len(MIMETypes))
	for i, m := range MIMETypes {
		offers[i] = m.MediaType
	}

	best := bestMatch(r.Header.Get("Accept"), offers)
	if best == "" {
		return ""
	}
	f, _ := Lookup(best)
	return f
}

// Negotiator binds a routing table so handlers can negotiate without passing
// it around. The zero value falls back to the request's chi context.
type Negotiator struct {
	routes chi.Routes
	log    *slog.Logger
}

// NewNegotiator creates a Negotiator for the given routing table.
// A nil logger disables debug output.
func NewNegotiator(routes chi.Routes, log *slog.Logger) *Negotiator {
	return &Negotiator{routes: routes, log: log}
}

// RequestFormat is a shortcut for the package level RequestFormat.
func (n *Negotiator) RequestFormat(r *http.Request) Format {
	return RequestFormat(r)
}

// ResponseFormat negotiates the response format and logs the decision at
// debug level.
func (n *Negotiator) ResponseFormat(r *http.Request) Format {
	f := ResponseFormat(r, n.routes)
	if n.log != nil {
		n.log.DebugContext(r.Context(), "response format negotiated",
			logger.Format(string(f)),
			slog.String("accept", r.Header.Get("Accept")),
			slog.String("path", r.URL.Path),
			logger.Component("negotiate"),
		)
	}
	return f
}
