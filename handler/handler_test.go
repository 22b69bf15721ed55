package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/httpkit/handler"
)

// Mock response for testing
type mockResponse struct {
	statusCode int
	body       string
	renderErr  error
}

func (m mockResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if m.renderErr != nil {
		return m.renderErr
	}
	w.WriteHeader(m.statusCode)
	_, _ = w.Write([]byte(m.body))
	return nil
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("basic handler without options", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
			assert.NotNil(t, ctx)
			assert.Equal(t, "", req)
			return mockResponse{statusCode: http.StatusOK, body: "success"}
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", rec.Body.String())
	})

	t.Run("handler with render error", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
			return mockResponse{renderErr: errors.New("render failed")}
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "render failed")
	})

	t.Run("http error keeps its status", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
			return mockResponse{renderErr: handler.ErrNotFound}
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "not_found")
	})

	t.Run("handler returns nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
			return nil
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "handler returned nil response")
	})

	t.Run("with custom context factory", func(t *testing.T) {
		t.Parallel()
		created := false
		factory := func(w http.ResponseWriter, r *http.Request) handler.Context {
			created = true
			return handler.NewContext(w, r)
		}
		h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
			return mockResponse{statusCode: http.StatusOK, body: "ok"}
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h, handler.WithContextFactory[handler.Context, string](factory))(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.True(t, created)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("binders run in order and skipped binders are ignored", func(t *testing.T) {
		t.Parallel()
		type listRequest struct {
			Page  string
			Limit string
		}
		skip := func(r *http.Request, v any) error { return handler.ErrBindingSkipped }
		page := func(r *http.Request, v any) error {
			v.(*listRequest).Page = r.URL.Query().Get("page")
			return nil
		}
		limit := func(r *http.Request, v any) error {
			v.(*listRequest).Limit = r.URL.Query().Get("limit")
			return nil
		}

		h := handler.HandlerFunc[handler.Context, listRequest](func(ctx handler.Context, req listRequest) handler.Response {
			return mockResponse{statusCode: http.StatusOK, body: req.Page + "/" + req.Limit}
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h,
			handler.WithBinders[handler.Context, listRequest](skip, page, limit),
		)(rec, httptest.NewRequest(http.MethodGet, "/test?page=2&limit=10", nil))

		assert.Equal(t, "2/10", rec.Body.String())
	})

	t.Run("binder error reaches the error handler", func(t *testing.T) {
		t.Parallel()
		var handled error
		bind := func(r *http.Request, v any) error { return handler.ErrBadRequest }
		h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
			t.Fatal("handler must not run")
			return nil
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h,
			handler.WithBinders[handler.Context, string](bind),
			handler.WithErrorHandler[handler.Context, string](func(ctx handler.Context, err error) {
				handled = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.ErrorIs(t, handled, handler.ErrBadRequest)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("decorators wrap in declaration order", func(t *testing.T) {
		t.Parallel()
		var order []string
		trace := func(name string) handler.Decorator[handler.Context, string] {
			return func(next handler.HandlerFunc[handler.Context, string]) handler.HandlerFunc[handler.Context, string] {
				return func(ctx handler.Context, req string) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h,
			handler.WithDecorators(trace("outer"), trace("inner")),
		)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	ctx := handler.NewContext(rec, req)

	assert.Same(t, req, ctx.Request())
	assert.Equal(t, rec, ctx.ResponseWriter())
	assert.NoError(t, ctx.Err())
	_, ok := ctx.Deadline()
	assert.False(t, ok)
}

func TestError(t *testing.T) {
	t.Parallel()

	h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
		return handler.Error(handler.ErrUnsupportedMediaType)
	})

	rec := httptest.NewRecorder()
	handler.Wrap(h)(rec, httptest.NewRequest(http.MethodPost, "/test", nil))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.ErrorIs(t, handler.Error(nil).Render(rec, nil), handler.ErrInternalServerError)
}
