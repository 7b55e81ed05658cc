package event

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	StatusDraft     EventStatus = "DRAFT"
	StatusPublished EventStatus = "PUBLISHED"
	StatusCancelled EventStatus = "CANCELLED"
)

// IsValid checks if the status is a valid EventStatus
func (s EventStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of EventStatus
func (s EventStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusPublished || target == StatusCancelled
	case StatusPublished:
		return target == StatusCancelled
	case StatusCancelled:
		return false // Terminal state
	}
	return false
}

// MaxTitleLength is the maximum allowed length for an event title
const MaxTitleLength = 200

// Event is the event aggregate. It is only mutated through ChangeStatus and
// UpdateInternalNotes; all other attributes are fixed at creation time.
type Event struct {
	ID            uuid.UUID
	Title         string
	StartAt       time.Time
	EndAt         time.Time
	Location      string
	Status        EventStatus
	InternalNotes string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewEvent creates a new event in DRAFT status.
// StartAt must be strictly before EndAt and must lie in the future.
func NewEvent(title, location string, startAt, endAt time.Time) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return nil, shared.NewDomainError("INVALID_TITLE", fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLength))
	}
	if strings.TrimSpace(location) == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location cannot be empty")
	}
	if !startAt.Before(endAt) {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Start time must be before end time")
	}
	if !startAt.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Start time must be in the future")
	}

	now := time.Now()
	return &Event{
		ID:        uuid.New(),
		Title:     title,
		StartAt:   startAt,
		EndAt:     endAt,
		Location:  location,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetInitialStatus sets the status supplied at creation time.
// Unlike ChangeStatus this is not a transition: any valid status is accepted,
// but it must be called before the event is first persisted.
func (e *Event) SetInitialStatus(status EventStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("Status must be one of: %s, %s, %s", StatusDraft, StatusPublished, StatusCancelled))
	}
	e.Status = status
	return nil
}

// SetCreatedBy records the creator's email address
func (e *Event) SetCreatedBy(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_CREATOR", "Creator must be a valid email address")
	}
	e.CreatedBy = email
	return nil
}

// ChangeStatus applies a status transition following the lifecycle rules:
// DRAFT may become PUBLISHED or CANCELLED, PUBLISHED may become CANCELLED,
// and CANCELLED is terminal. Re-stating the current status is rejected.
func (e *Event) ChangeStatus(target EventStatus) error {
	if e.Status == StatusCancelled {
		return shared.NewDomainError("EVENT_LOCKED", "Cancelled events cannot be modified")
	}
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("Status must be one of: %s, %s, %s", StatusDraft, StatusPublished, StatusCancelled))
	}
	if !e.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition from %s to %s", e.Status, target))
	}
	e.Status = target
	e.UpdatedAt = time.Now()
	return nil
}

// UpdateInternalNotes replaces the private notes. Cancelled events are
// terminal and reject every mutation, notes included.
func (e *Event) UpdateInternalNotes(notes string) error {
	if e.Status == StatusCancelled {
		return shared.NewDomainError("EVENT_LOCKED", "Cancelled events cannot be modified")
	}
	e.InternalNotes = notes
	e.UpdatedAt = time.Now()
	return nil
}
