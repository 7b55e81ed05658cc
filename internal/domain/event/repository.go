package event

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for events.
// Implementations return copies; callers never share mutable state with
// the backing store.
type Repository interface {
	// FindByID returns the event or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	// Save persists a newly created event
	Save(ctx context.Context, e *Event) error
	// Update persists mutations to an existing event
	Update(ctx context.Context, e *Event) error
	// Query filters, sorts, and paginates the collection per Query semantics
	Query(ctx context.Context, q Query) (PagedResult[Event], error)
}
