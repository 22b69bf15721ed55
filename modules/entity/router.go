package entity

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/httpkit/handler"
	"github.com/dmitrymomot/httpkit/pkg/cors"
	"github.com/dmitrymomot/httpkit/pkg/negotiate"
)

// RouterOptions configures the entity routes.
type RouterOptions struct {
	Store  Store
	Logger *slog.Logger
	// CORS is applied to every route when set; OPTIONS routes are
	// registered so preflight requests reach it.
	CORS         *cors.Policy
	ErrorHandler handler.ErrorHandler[handler.Context]
}

// Router creates the entity routes. Paths are absolute so the router can be
// mounted at "/":
//
//	r.Mount("/", entity.Router(entity.RouterOptions{Store: store}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	h := NewHandlers(opts.Store, negotiate.NewNegotiator(nil, opts.Logger), opts.Logger)

	list := wrap(h.List, opts)
	show := wrap(h.Show, opts)
	create := wrap(h.Create, opts, handler.WithBinders[handler.Context, CreateRequest](BindCreate))

	for _, path := range []string{"/entities", "/entities.{format}"} {
		r.Get(path, list)
		if opts.CORS != nil {
			r.Options(path, list)
		}
	}
	for _, path := range []string{"/entities/{id}", "/entities/{id}.{format}"} {
		r.Get(path, show)
		if opts.CORS != nil {
			r.Options(path, show)
		}
	}
	r.Post("/entities", create)

	return r
}

func wrap[R any](fn func(handler.Context, R) handler.Response, opts RouterOptions, extra ...handler.WrapOption[handler.Context, R]) http.HandlerFunc {
	wopts := make([]handler.WrapOption[handler.Context, R], 0, len(extra)+2)
	if opts.ErrorHandler != nil {
		wopts = append(wopts, handler.WithErrorHandler[handler.Context, R](opts.ErrorHandler))
	}
	if opts.CORS != nil {
		wopts = append(wopts, handler.WithDecorators(handler.CORS[handler.Context, R](opts.CORS)))
	}
	return handler.Wrap(handler.HandlerFunc[handler.Context, R](fn), append(wopts, extra...)...)
}
