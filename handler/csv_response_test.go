package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/handler"
	"github.com/dmitrymomot/httpkit/pkg/csvstream"
)

func TestCSV(t *testing.T) {
	t.Parallel()

	t.Run("streams rows with header from first row", func(t *testing.T) {
		t.Parallel()
		rows := []csvstream.Row{
			{{Column: "id", Value: 1}, {Column: "name", Value: "Acme"}, {Column: "budget", Value: 1234.5}},
			{{Column: "id", Value: 2}, {Column: "name", Value: nil}, {Column: "tags", Value: []string{"x"}}},
		}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/entities.csv", nil)

		err := handler.CSV(csvstream.FromRows(rows), handler.WithFilename("entities.csv")).Render(rec, req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Equal(t, "attachment; filename=entities.csv", rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "id,name,budget\r\n1,Acme,1234.50\r\n2,,\r\n", rec.Body.String())
		assert.True(t, rec.Flushed)
	})

	t.Run("no filename means no attachment", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		require.NoError(t, handler.CSV(csvstream.FromMaps(nil)).Render(rec, req))
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		_, ok := rec.Header()["Content-Disposition"]
		assert.False(t, ok)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("empty source gives empty body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		require.NoError(t, handler.CSV(csvstream.FromMaps(nil)).Render(rec, req))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("maps use sorted columns and iso timestamps", func(t *testing.T) {
		t.Parallel()
		ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := handler.CSV(csvstream.FromMaps([]map[string]any{
			{"name": "a", "created": ts},
		})).Render(rec, req)
		require.NoError(t, err)
		assert.Equal(t, "created,name\r\n2024-03-01T12:00:00Z,a\r\n", rec.Body.String())
	})

	t.Run("source error interrupts the stream", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("cursor closed")
		src := func(yield func(csvstream.Row, error) bool) {
			if !yield(csvstream.Row{{Column: "id", Value: 1}}, nil) {
				return
			}
			yield(nil, boom)
		}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := handler.CSV(src).Render(rec, req)
		assert.ErrorIs(t, err, handler.ErrStreamInterrupted)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "id\r\n1\r\n", rec.Body.String())
	})

	t.Run("status option", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := handler.CSV(csvstream.FromRows(nil),
			handler.WithCSVStatus(http.StatusPartialContent),
			handler.WithCSVHeaders(http.Header{"Cache-Control": {"no-store"}}),
		).Render(rec, req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusPartialContent, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	})
}
