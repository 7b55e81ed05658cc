package event

import (
	"sort"
	"strings"
	"time"
)

// Pagination limits
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query describes a filter over the event collection. Absent criteria
// impose no constraint; provided criteria are combined conjunctively.
type Query struct {
	// DateFrom and DateTo bound the calendar date (UTC) of StartAt,
	// both inclusive.
	DateFrom *time.Time
	DateTo   *time.Time
	// Locations are matched as case-insensitive substrings, OR-combined.
	Locations []string
	Statuses  []EventStatus
	Page      int
	Limit     int
}

// Normalize clamps paging parameters to their documented bounds.
// Page defaults to 1, Limit to DefaultLimit, capped at MaxLimit.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Pagination carries paging metadata alongside query results
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes paging metadata for a total match count
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PagedResult is a page of query results plus paging metadata
type PagedResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Matches reports whether the event satisfies every provided criterion
func (q Query) Matches(e *Event) bool {
	if q.DateFrom != nil || q.DateTo != nil {
		y, m, d := e.StartAt.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if q.DateFrom != nil && day.Before(*q.DateFrom) {
			return false
		}
		if q.DateTo != nil && day.After(*q.DateTo) {
			return false
		}
	}
	if len(q.Locations) > 0 {
		loc := strings.ToLower(e.Location)
		found := false
		for _, want := range q.Locations {
			if strings.Contains(loc, strings.ToLower(strings.TrimSpace(want))) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(q.Statuses) > 0 {
		found := false
		for _, s := range q.Statuses {
			if e.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RunQuery filters, sorts, and paginates a snapshot of the event
// collection. Results are ordered ascending by StartAt with the event ID
// as tiebreak, so the total order is stable across runs. A page past the
// last one yields an empty data set with correct metadata.
func RunQuery(events []Event, q Query) PagedResult[Event] {
	q = q.Normalize()

	matched := make([]Event, 0, len(events))
	for i := range events {
		if q.Matches(&events[i]) {
			matched = append(matched, events[i])
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].StartAt.Equal(matched[j].StartAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].StartAt.Before(matched[j].StartAt)
	})

	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return PagedResult[Event]{
		Data:       matched[start:end],
		Pagination: NewPagination(q.Page, q.Limit, total),
	}
}

// RunPublicQuery runs the query restricted to publicly visible statuses
// and maps every result through the public projection. Records without a
// projection are dropped defensively; the forced status filter should
// already exclude them.
func RunPublicQuery(events []Event, q Query) PagedResult[PublicEvent] {
	q.Statuses = []EventStatus{StatusPublished, StatusCancelled}
	result := RunQuery(events, q)

	public := make([]PublicEvent, 0, len(result.Data))
	for i := range result.Data {
		if p, ok := result.Data[i].ToPublic(); ok {
			public = append(public, p)
		}
	}
	return PagedResult[PublicEvent]{
		Data:       public,
		Pagination: result.Pagination,
	}
}
