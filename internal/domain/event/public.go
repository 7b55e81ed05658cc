package event

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PublicEvent is the redacted projection of an event exposed to
// unauthenticated consumers. Internal notes, creator, and timestamps are
// never part of it. It only exists for PUBLISHED and CANCELLED events.
type PublicEvent struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	StartAt    time.Time   `json:"startAt"`
	EndAt      time.Time   `json:"endAt"`
	Location   string      `json:"location"`
	Status     EventStatus `json:"status"`
	IsUpcoming bool        `json:"isUpcoming"`
}

// ToPublic derives the public projection of the event.
// The second return value is false for DRAFT events, which have no
// public representation.
func (e *Event) ToPublic() (PublicEvent, bool) {
	if e.Status != StatusPublished && e.Status != StatusCancelled {
		return PublicEvent{}, false
	}
	return PublicEvent{
		ID:         e.ID.String(),
		Title:      e.Title,
		StartAt:    e.StartAt,
		EndAt:      e.EndAt,
		Location:   e.Location,
		Status:     e.Status,
		IsUpcoming: e.StartAt.After(time.Now()),
	}, true
}

// Fingerprint computes the content hash used as the summary cache key.
// The field order (title, location, start, end) is pinned; times are
// canonicalized to UTC RFC3339 so identical instants hash identically
// across time zones. Status is deliberately not hashed: visibility changes
// are handled by explicit invalidation instead.
func Fingerprint(title, location string, startAt, endAt time.Time) string {
	h := sha256.New()
	h.Write([]byte(title))
	h.Write([]byte{'|'})
	h.Write([]byte(location))
	h.Write([]byte{'|'})
	h.Write([]byte(startAt.UTC().Format(time.RFC3339)))
	h.Write([]byte{'|'})
	h.Write([]byte(endAt.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint returns the summary cache key for this projection
func (p PublicEvent) Fingerprint() string {
	return Fingerprint(p.Title, p.Location, p.StartAt, p.EndAt)
}

// FingerprintOf returns the summary cache key for an event record,
// regardless of its visibility. Used when invalidating after a status
// change, where the projection may no longer (or not yet) exist.
func FingerprintOf(e *Event) string {
	return Fingerprint(e.Title, e.Location, e.StartAt, e.EndAt)
}
