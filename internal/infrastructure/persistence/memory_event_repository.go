package persistence

import (
	"context"
	"sync"

	"github.com/eventhub/backend/internal/domain/event"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MemoryEventRepository implements event.Repository with a mutex-guarded
// map. Events are stored by value so callers never share entity pointers
// with the store. Suitable for tests and standalone deployments.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID]event.Event
}

// NewMemoryEventRepository creates an empty in-memory event repository
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{
		events: make(map[uuid.UUID]event.Event),
	}
}

// FindByID returns a copy of the stored event
func (r *MemoryEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

// Save inserts a new event
func (r *MemoryEventRepository) Save(ctx context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[e.ID]; exists {
		return shared.ErrAlreadyExists
	}
	r.events[e.ID] = *e
	return nil
}

// Update replaces the stored state of an existing event
func (r *MemoryEventRepository) Update(ctx context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[e.ID]; !exists {
		return shared.ErrNotFound
	}
	r.events[e.ID] = *e
	return nil
}

// Query runs the filter over a snapshot of the collection, so a slow
// caller never holds the lock during sorting or pagination.
func (r *MemoryEventRepository) Query(ctx context.Context, q event.Query) (event.PagedResult[event.Event], error) {
	r.mu.RLock()
	snapshot := make([]event.Event, 0, len(r.events))
	for _, e := range r.events {
		snapshot = append(snapshot, e)
	}
	r.mu.RUnlock()

	return event.RunQuery(snapshot, q), nil
}

// Ensure MemoryEventRepository implements event.Repository
var _ event.Repository = (*MemoryEventRepository)(nil)
