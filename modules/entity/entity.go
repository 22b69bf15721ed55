package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/httpkit/pkg/csvstream"
	"github.com/dmitrymomot/httpkit/pkg/etag"
)

// Entity is a registered organisation.
type Entity struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Category  string          `db:"category"`
	Country   string          `db:"country"`
	Budget    decimal.Decimal `db:"budget"`
	Tags      []string        `db:"tags"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// AsDict returns the full representation.
func (e Entity) AsDict() map[string]any {
	return map[string]any{
		"id":         e.ID,
		"name":       e.Name,
		"category":   e.Category,
		"country":    e.Country,
		"budget":     e.Budget,
		"tags":       e.Tags,
		"created_at": e.CreatedAt,
		"updated_at": e.UpdatedAt,
	}
}

// AsShallow returns the listing representation.
func (e Entity) AsShallow() map[string]any {
	return map[string]any{
		"id":         e.ID,
		"name":       e.Name,
		"updated_at": e.UpdatedAt,
	}
}

// Row returns the entity as a CSV row. Tags have no CSV form and are dropped
// by the writer.
func (e Entity) Row() csvstream.Row {
	return csvstream.Row{
		{Column: "id", Value: e.ID},
		{Column: "name", Value: e.Name},
		{Column: "category", Value: e.Category},
		{Column: "country", Value: e.Country},
		{Column: "budget", Value: e.Budget},
		{Column: "tags", Value: e.Tags},
		{Column: "created_at", Value: e.CreatedAt},
		{Column: "updated_at", Value: e.UpdatedAt},
	}
}

// CacheKey identifies the current state of a single entity.
func (e Entity) CacheKey() etag.Key {
	return etag.Key{
		"id":             e.ID,
		etag.ModifiedKey: e.UpdatedAt,
	}
}

// ListCacheKey identifies the current state of a listing.
func ListCacheKey(entities []Entity) etag.Key {
	var modified time.Time
	for _, e := range entities {
		if e.UpdatedAt.After(modified) {
			modified = e.UpdatedAt
		}
	}
	key := etag.Key{"count": len(entities)}
	if !modified.IsZero() {
		key[etag.ModifiedKey] = modified
	}
	return key
}
