package event

import (
	"context"
	"fmt"

	"github.com/eventhub/backend/internal/application/summary"
	"github.com/eventhub/backend/internal/domain/event"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles event lifecycle operations. Every status change is
// followed by a summary cache invalidation for the event's fingerprint:
// the fingerprint itself does not cover status, so this is a deliberate
// safety measure against serving a summary across a visibility change.
type Service struct {
	repo      event.Repository
	summaries summary.Cache
	notifier  Notifier
	logger    *zap.Logger
}

// ServiceOption is a functional option for Service configuration
type ServiceOption func(*Service)

// WithNotifier replaces the default log-backed lifecycle notifier
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// NewService creates a new event Service
func NewService(repo event.Repository, summaries summary.Cache, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		repo:      repo,
		summaries: summaries,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier(logger)
	}
	return s
}

func parseStatus(s string) (event.EventStatus, error) {
	status := event.EventStatus(s)
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("Status must be one of: %s, %s, %s", event.StatusDraft, event.StatusPublished, event.StatusCancelled))
	}
	return status, nil
}

// Create creates a new event, in DRAFT unless an initial status is supplied
func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	e, err := event.NewEvent(req.Title, req.Location, req.StartAt, req.EndAt)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		status, err := parseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if err := e.SetInitialStatus(status); err != nil {
			return nil, err
		}
	}
	if req.InternalNotes != "" {
		if err := e.UpdateInternalNotes(req.InternalNotes); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != "" {
		if err := e.SetCreatedBy(req.CreatedBy); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}

	s.notifier.EventCreated(ctx, e)

	s.logger.Info("event created",
		zap.String("event_id", e.ID.String()),
		zap.String("status", e.Status.String()))
	return ToEventResponse(e), nil
}

// Update applies a partial change (status and/or internal notes) to an
// existing event. The status transition rule is enforced before anything
// is persisted; cancelled events reject every change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if req.InternalNotes != nil {
		if err := e.UpdateInternalNotes(*req.InternalNotes); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if err := e.ChangeStatus(status); err != nil {
			return nil, err
		}
		statusChanged = true
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	if statusChanged {
		s.invalidateSummary(ctx, e)
		switch e.Status {
		case event.StatusPublished:
			s.notifier.EventPublished(ctx, e)
		case event.StatusCancelled:
			s.notifier.EventCancelled(ctx, e)
		}
	}

	s.logger.Info("event updated",
		zap.String("event_id", e.ID.String()),
		zap.String("status", e.Status.String()),
		zap.Bool("status_changed", statusChanged))
	return ToEventResponse(e), nil
}

// invalidateSummary drops a possibly stale cached summary after a status
// change. Invalidation and the store update are independent idempotent
// steps; a failure here only delays cache convergence, so it is logged
// and swallowed.
func (s *Service) invalidateSummary(ctx context.Context, e *event.Event) {
	fp := event.FingerprintOf(e)
	if err := s.summaries.Invalidate(ctx, fp); err != nil {
		s.logger.Warn("summary cache invalidation failed",
			zap.String("event_id", e.ID.String()),
			zap.String("fingerprint", fp),
			zap.Error(err))
	}
}

// GetByID returns the full representation of a single event
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEventResponse(e), nil
}

func (f ListFilter) toQuery() (event.Query, error) {
	q := event.Query{
		DateFrom:  f.DateFrom,
		DateTo:    f.DateTo,
		Locations: f.Locations,
		Page:      f.Page,
		Limit:     f.Limit,
	}
	for _, raw := range f.Statuses {
		status, err := parseStatus(raw)
		if err != nil {
			return event.Query{}, err
		}
		q.Statuses = append(q.Statuses, status)
	}
	return q, nil
}

// List queries events with the full private representation
func (s *Service) List(ctx context.Context, f ListFilter) (event.PagedResult[*EventResponse], error) {
	q, err := f.toQuery()
	if err != nil {
		return event.PagedResult[*EventResponse]{}, err
	}

	result, err := s.repo.Query(ctx, q)
	if err != nil {
		return event.PagedResult[*EventResponse]{}, err
	}

	data := make([]*EventResponse, 0, len(result.Data))
	for i := range result.Data {
		data = append(data, ToEventResponse(&result.Data[i]))
	}
	return event.PagedResult[*EventResponse]{
		Data:       data,
		Pagination: result.Pagination,
	}, nil
}

// ListPublic queries events restricted to publicly visible statuses and
// maps every match through the public projection. A caller-supplied
// status filter is ignored by design.
func (s *Service) ListPublic(ctx context.Context, f ListFilter) (event.PagedResult[event.PublicEvent], error) {
	f.Statuses = nil
	q, err := f.toQuery()
	if err != nil {
		return event.PagedResult[event.PublicEvent]{}, err
	}
	q.Statuses = []event.EventStatus{event.StatusPublished, event.StatusCancelled}

	result, err := s.repo.Query(ctx, q)
	if err != nil {
		return event.PagedResult[event.PublicEvent]{}, err
	}

	public := make([]event.PublicEvent, 0, len(result.Data))
	for i := range result.Data {
		if p, ok := result.Data[i].ToPublic(); ok {
			public = append(public, p)
		}
	}
	return event.PagedResult[event.PublicEvent]{
		Data:       public,
		Pagination: result.Pagination,
	}, nil
}
