package entity

import (
	"context"

	"github.com/dmitrymomot/httpkit/pkg/csvstream"
)

// Store persists entities.
type Store interface {
	List(ctx context.Context) ([]Entity, error)
	Get(ctx context.Context, id int64) (Entity, error)
	Create(ctx context.Context, e Entity) (Entity, error)
	// Export streams all entities as CSV rows.
	Export(ctx context.Context) (csvstream.Source, error)
}
