package models

import (
	"time"

	"github.com/eventhub/backend/internal/domain/event"
	"github.com/google/uuid"
)

// EventModel is the persistence representation of an event
type EventModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Title         string    `gorm:"size:200;not null"`
	StartAt       time.Time `gorm:"not null;index"`
	EndAt         time.Time `gorm:"not null"`
	Location      string    `gorm:"size:255;not null"`
	Status        string    `gorm:"size:20;not null;index"`
	InternalNotes string    `gorm:"type:text"`
	CreatedBy     string    `gorm:"size:255"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for EventModel
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts EventModel to a domain event
func (m *EventModel) ToDomain() *event.Event {
	return &event.Event{
		ID:            m.ID,
		Title:         m.Title,
		StartAt:       m.StartAt,
		EndAt:         m.EndAt,
		Location:      m.Location,
		Status:        event.EventStatus(m.Status),
		InternalNotes: m.InternalNotes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// EventModelFromDomain converts a domain event to its persistence model
func EventModelFromDomain(e *event.Event) *EventModel {
	return &EventModel{
		ID:            e.ID,
		Title:         e.Title,
		StartAt:       e.StartAt,
		EndAt:         e.EndAt,
		Location:      e.Location,
		Status:        e.Status.String(),
		InternalNotes: e.InternalNotes,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
