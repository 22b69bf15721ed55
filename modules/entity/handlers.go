package entity

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/httpkit/handler"
	"github.com/dmitrymomot/httpkit/pkg/csvstream"
	"github.com/dmitrymomot/httpkit/pkg/etag"
	"github.com/dmitrymomot/httpkit/pkg/logger"
	"github.com/dmitrymomot/httpkit/pkg/negotiate"
)

// Handlers serves the entity resource in every negotiated format.
type Handlers struct {
	store Store
	neg   *negotiate.Negotiator
	log   *slog.Logger
}

// NewHandlers creates the entity handlers.
func NewHandlers(store Store, neg *negotiate.Negotiator, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	if neg == nil {
		neg = negotiate.NewNegotiator(nil, log)
	}
	return &Handlers{store: store, neg: neg, log: log.With(logger.Component("entity"))}
}

// List serves /entities and /entities.{format}.
func (h *Handlers) List(ctx handler.Context, _ struct{}) handler.Response {
	entities, err := h.store.List(ctx)
	if err != nil {
		return handler.Error(err)
	}

	r := ctx.Request()
	format := h.neg.ResponseFormat(r)
	key := ListCacheKey(entities)
	key["format"] = format.String()

	return h.cached(r, key, handler.Representations{
		HTML: func() handler.Response { return handler.HTML(ListPage(entities)) },
		JSON: func() handler.Response {
			return handler.JSON(map[string]any{
				"count":   len(entities),
				"results": entities,
			}, handler.WithShallow())
		},
		CSV: func() handler.Response {
			src, err := h.store.Export(ctx)
			if err != nil {
				return handler.Error(err)
			}
			return handler.CSV(src, handler.WithFilename("entities.csv"))
		},
	})
}

// Show serves /entities/{id} and /entities/{id}.{format}.
func (h *Handlers) Show(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return handler.Error(handler.ErrNotFound)
	}

	e, err := h.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return handler.Error(errors.Join(handler.ErrNotFound, err))
	}
	if err != nil {
		return handler.Error(err)
	}

	key := e.CacheKey()
	key["format"] = h.neg.ResponseFormat(r).String()

	return h.cached(r, key, handler.Representations{
		HTML: func() handler.Response { return handler.HTML(DetailPage(e)) },
		JSON: func() handler.Response { return handler.JSON(e) },
		CSV: func() handler.Response {
			return handler.CSV(csvstream.FromRows([]csvstream.Row{e.Row()}), handler.WithFilename("entity-"+strconv.FormatInt(e.ID, 10)+".csv"))
		},
	})
}

// Create handles POST /entities with a JSON or form body.
func (h *Handlers) Create(ctx handler.Context, req CreateRequest) handler.Response {
	e, err := h.store.Create(ctx, req.entity())
	if err != nil {
		return handler.Error(err)
	}
	location := "/entities/" + strconv.FormatInt(e.ID, 10)

	h.log.InfoContext(ctx, "entity created",
		slog.Int64("id", e.ID),
		logger.Format(req.Format.String()),
	)

	if req.Format != negotiate.FormatJSON {
		return handler.Redirect(location)
	}
	return handler.JSON(e,
		handler.WithJSONStatus(http.StatusCreated),
		handler.WithJSONHeaders(http.Header{"Location": {location}}),
	)
}

func (h *Handlers) cached(r *http.Request, key etag.Key, reps handler.Representations) handler.Response {
	res := etag.Validate(r, key)
	if res.NotModified {
		h.log.DebugContext(r.Context(), "not modified",
			logger.ETag(res.ETag),
			slog.String("path", r.URL.Path),
		)
	}
	return handler.Cached(res, handler.Represent(reps))
}
