package cors

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/httpkit/pkg/logger"
)

const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderMaxAge       = "Access-Control-Max-Age"
)

// Policy is an immutable CORS configuration. It is safe for concurrent use.
type Policy struct {
	origin           string
	methods          string
	headers          string
	maxAge           time.Duration
	attachToAll      bool
	automaticOptions bool
	resolver         MethodResolver
	log              *slog.Logger
}

// New creates a Policy. Defaults: origin "*", methods resolved per request,
// max age DefaultMaxAge, headers attached to all responses and OPTIONS
// answered automatically.
func New(opts ...Option) *Policy {
	p := &Policy{
		origin:           "*",
		maxAge:           DefaultMaxAge,
		attachToAll:      true,
		automaticOptions: true,
		resolver:         ChiMethods(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Middleware is a shortcut for New(opts...).Handler.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return New(opts...).Handler
}

// AutomaticOptions reports whether OPTIONS requests are answered by the policy.
func (p *Policy) AutomaticOptions() bool {
	return p.automaticOptions
}

// Handler wraps next with the policy.
func (p *Policy) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.automaticOptions && r.Method == http.MethodOptions {
			p.ServeOptions(w, r)
			return
		}

		cw := p.Writer(w, r)
		next.ServeHTTP(cw, r)
		cw.Finish()
	})
}

// ServeOptions writes the default OPTIONS response with CORS headers.
func (p *Policy) ServeOptions(w http.ResponseWriter, r *http.Request) {
	allow := strings.Join(p.resolver(r), ", ")
	if p.log != nil {
		p.log.DebugContext(r.Context(), "answering OPTIONS request",
			slog.String("path", r.URL.Path),
			slog.String("allow", allow),
			logger.Component("cors"),
		)
	}

	h := w.Header()
	h.Set("Allow", allow)
	p.apply(h, r, allow)
	w.WriteHeader(http.StatusOK)
}

// Writer wraps w so that CORS headers are set right before the status line
// is written. Call Finish once the handler returned.
func (p *Policy) Writer(w http.ResponseWriter, r *http.Request) *Writer {
	return &Writer{ResponseWriter: w, policy: p, req: r}
}

// Apply sets the CORS headers on h for request r, honouring attach-to-all.
func (p *Policy) Apply(h http.Header, r *http.Request) {
	if !p.attachToAll && r.Method != http.MethodOptions {
		return
	}
	p.apply(h, r, "")
}

func (p *Policy) apply(h http.Header, r *http.Request, allow string) {
	methods := p.methods
	if methods == "" {
		if allow == "" {
			allow = strings.Join(p.resolver(r), ", ")
		}
		methods = allow
	}

	h.Set(HeaderAllowOrigin, p.origin)
	h.Set(HeaderAllowMethods, methods)
	h.Set(HeaderMaxAge, strconv.FormatInt(int64(p.maxAge/time.Second), 10))
	if p.headers != "" {
		h.Set(HeaderAllowHeaders, p.headers)
	}
}

// Writer injects CORS headers into a response.
type Writer struct {
	http.ResponseWriter
	policy      *Policy
	req         *http.Request
	wroteHeader bool
}

func (w *Writer) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.policy.Apply(w.Header(), w.req)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *Writer) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher so streamed responses keep working.
func (w *Writer) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *Writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Finish makes sure headers are attached even when the handler wrote
// nothing.
func (w *Writer) Finish() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
}
