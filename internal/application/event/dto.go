package event

import (
	"time"

	"github.com/eventhub/backend/internal/domain/event"
)

// CreateEventRequest carries the attributes for a new event
type CreateEventRequest struct {
	Title         string
	Location      string
	StartAt       time.Time
	EndAt         time.Time
	Status        string // optional, defaults to DRAFT
	InternalNotes string
	CreatedBy     string // optional, creator email
}

// UpdateEventRequest is a partial change: only the status and the internal
// notes of an existing event may ever be modified
type UpdateEventRequest struct {
	Status        *string
	InternalNotes *string
}

// ListFilter carries query criteria for event listings
type ListFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	Locations []string
	Statuses  []string
	Page      int
	Limit     int
}

// EventResponse is the full (private) representation of an event
type EventResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Location      string    `json:"location"`
	Status        string    `json:"status"`
	InternalNotes string    `json:"internalNotes,omitempty"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToEventResponse maps a domain event to its private representation
func ToEventResponse(e *event.Event) *EventResponse {
	return &EventResponse{
		ID:            e.ID.String(),
		Title:         e.Title,
		StartAt:       e.StartAt,
		EndAt:         e.EndAt,
		Location:      e.Location,
		Status:        e.Status.String(),
		InternalNotes: e.InternalNotes,
		CreatedBy:     e.CreatedBy,
		UpdatedAt:     e.UpdatedAt,
	}
}
