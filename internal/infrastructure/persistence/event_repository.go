package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eventhub/backend/internal/domain/event"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/eventhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventRepository implements event.Repository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by its ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts a new event
func (r *GormEventRepository) Save(ctx context.Context, e *event.Event) error {
	model := models.EventModelFromDomain(e)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists the full current state of an existing event
func (r *GormEventRepository) Update(ctx context.Context, e *event.Event) error {
	model := models.EventModelFromDomain(e)
	result := r.db.WithContext(ctx).Model(&models.EventModel{}).
		Where("id = ?", e.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Query filters, sorts, and paginates events. The SQL translation mirrors
// the in-memory query semantics: conjunctive criteria, OR-combined
// case-insensitive location substrings, calendar-date bounds on StartAt,
// and a stable (start_at, id) ascending order.
func (r *GormEventRepository) Query(ctx context.Context, q event.Query) (event.PagedResult[event.Event], error) {
	q = q.Normalize()

	tx := r.db.WithContext(ctx).Model(&models.EventModel{})
	tx = applyEventFilter(tx, q)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return event.PagedResult[event.Event]{}, err
	}

	var eventModels []models.EventModel
	err := tx.
		Order("start_at ASC, id ASC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&eventModels).Error
	if err != nil {
		return event.PagedResult[event.Event]{}, err
	}

	events := make([]event.Event, len(eventModels))
	for i := range eventModels {
		events[i] = *eventModels[i].ToDomain()
	}

	return event.PagedResult[event.Event]{
		Data:       events,
		Pagination: event.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// applyEventFilter translates the query criteria to WHERE clauses
func applyEventFilter(tx *gorm.DB, q event.Query) *gorm.DB {
	if q.DateFrom != nil {
		tx = tx.Where("start_at >= ?", q.DateFrom.UTC())
	}
	if q.DateTo != nil {
		// DateTo bounds the calendar date inclusively, so the cutoff is the
		// start of the following day.
		tx = tx.Where("start_at < ?", q.DateTo.UTC().Add(24*time.Hour))
	}
	if len(q.Locations) > 0 {
		clauses := make([]string, 0, len(q.Locations))
		args := make([]any, 0, len(q.Locations))
		for _, loc := range q.Locations {
			clauses = append(clauses, "LOWER(location) LIKE ?")
			args = append(args, "%"+strings.ToLower(strings.TrimSpace(loc))+"%")
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = s.String()
		}
		tx = tx.Where("status IN ?", statuses)
	}
	return tx
}

// Ensure GormEventRepository implements event.Repository
var _ event.Repository = (*GormEventRepository)(nil)
