package entity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/modules/entity"
	"github.com/dmitrymomot/httpkit/pkg/etag"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := entity.NewMemoryStore(
		entity.Entity{ID: 5, Name: "five"},
		entity.Entity{ID: 2, Name: "two"},
	)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)

	_, err = s.Get(ctx, 3)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	e, err := s.Create(ctx, entity.Entity{Name: "six"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), e.ID)
	assert.False(t, e.UpdatedAt.IsZero())

	got, err := s.Get(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "six", got.Name)
}

func TestMemoryStoreExportStopsOnCancel(t *testing.T) {
	t.Parallel()

	s := entity.NewMemoryStore(entity.Entity{ID: 1}, entity.Entity{ID: 2})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := s.Export(ctx)
	require.NoError(t, err)

	var rows int
	var lastErr error
	for row, err := range src {
		if err != nil {
			lastErr = err
			break
		}
		rows++
		assert.NotEmpty(t, row)
		cancel()
	}
	assert.Equal(t, 1, rows)
	assert.ErrorIs(t, lastErr, context.Canceled)
}

func TestListCacheKey(t *testing.T) {
	t.Parallel()

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	key := entity.ListCacheKey([]entity.Entity{{UpdatedAt: older}, {UpdatedAt: newer}})
	assert.Equal(t, newer, key.Modified())
	assert.Equal(t, 2, key["count"])

	empty := entity.ListCacheKey(nil)
	assert.True(t, empty.Modified().IsZero())
	assert.NotEqual(t, etag.Compute(key), etag.Compute(empty))
}
