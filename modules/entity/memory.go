package entity

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/httpkit/pkg/csvstream"
)

// MemoryStore keeps entities in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	entities []Entity
	nextID   int64
	now      func() time.Time
}

// NewMemoryStore returns a store seeded with entities. IDs of seeded
// entities are kept; new ones continue after the highest.
func NewMemoryStore(seed ...Entity) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, e := range seed {
		s.entities = append(s.entities, e)
		s.nextID = max(s.nextID, e.ID)
	}
	slices.SortFunc(s.entities, func(a, b Entity) int { return cmp.Compare(a.ID, b.ID) })
	return s
}

func (s *MemoryStore) List(ctx context.Context) ([]Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entities), nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.entities, func(e Entity) bool { return e.ID == id })
	if i < 0 {
		return Entity{}, ErrNotFound
	}
	return s.entities[i], nil
}

func (s *MemoryStore) Create(ctx context.Context, e Entity) (Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	now := s.now().UTC()
	e.ID = s.nextID
	e.CreatedAt, e.UpdatedAt = now, now
	s.entities = append(s.entities, e)
	return e, nil
}

func (s *MemoryStore) Export(ctx context.Context) (csvstream.Source, error) {
	entities, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return func(yield func(csvstream.Row, error) bool) {
		for _, e := range entities {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(e.Row(), nil) {
				return
			}
		}
	}, nil
}
