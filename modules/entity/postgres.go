package entity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/httpkit/pkg/csvstream"
)

const entityColumns = "id, name, category, country, budget, tags, created_at, updated_at"

// PostgresStore reads entities from the entity table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) List(ctx context.Context) ([]Entity, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+entityColumns+" FROM entity ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	entities, err := pgx.CollectRows(rows, pgx.RowToStructByName[Entity])
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	return entities, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Entity, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+entityColumns+" FROM entity WHERE id = $1", id)
	if err != nil {
		return Entity{}, fmt.Errorf("get entity: %w", err)
	}
	e, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Entity])
	if errors.Is(err, pgx.ErrNoRows) {
		return Entity{}, ErrNotFound
	}
	if err != nil {
		return Entity{}, fmt.Errorf("get entity: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) Create(ctx context.Context, e Entity) (Entity, error) {
	rows, err := s.pool.Query(ctx,
		`INSERT INTO entity (name, category, country, budget, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+entityColumns,
		e.Name, e.Category, e.Country, e.Budget, e.Tags,
	)
	if err != nil {
		return Entity{}, fmt.Errorf("create entity: %w", err)
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Entity])
	if err != nil {
		return Entity{}, fmt.Errorf("create entity: %w", err)
	}
	return created, nil
}

// Export streams the query result directly; rows are closed once the
// source is drained or abandoned.
func (s *PostgresStore) Export(ctx context.Context) (csvstream.Source, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, category, country, budget, created_at, updated_at FROM entity ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("export entities: %w", err)
	}
	return csvstream.FromPgxRows(rows), nil
}
