package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/eventhub/backend/internal/domain/event"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/eventhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.EventModel{}, &models.UserModel{}, &models.AttachmentModel{}))
	return db
}

func storedEvent(title, location string, start time.Time, status event.EventStatus) *event.Event {
	now := time.Now().UTC()
	return &event.Event{
		ID:        uuid.New(),
		Title:     title,
		StartAt:   start,
		EndAt:     start.Add(2 * time.Hour),
		Location:  location,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seedQueryFixture(t *testing.T, repo *GormEventRepository) {
	t.Helper()
	ctx := context.Background()
	fixtures := []*event.Event{
		storedEvent("Day One", "Berlin", time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC), event.StatusDraft),
		storedEvent("Day Two", "Munich", time.Date(2025, 12, 2, 10, 0, 0, 0, time.UTC), event.StatusPublished),
		storedEvent("Day Three", "Hamburg", time.Date(2025, 12, 3, 10, 0, 0, 0, time.UTC), event.StatusCancelled),
	}
	for _, e := range fixtures {
		require.NoError(t, repo.Save(ctx, e))
	}
}

func dateUTC(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGormEventRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormEventRepository(setupTestDB(t))
	ctx := context.Background()

	e := storedEvent("Go Meetup", "Berlin", time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC), event.StatusDraft)
	e.InternalNotes = "room booked"
	e.CreatedBy = "organizer@example.com"
	require.NoError(t, repo.Save(ctx, e))

	found, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, found.ID)
	assert.Equal(t, "Go Meetup", found.Title)
	assert.Equal(t, event.StatusDraft, found.Status)
	assert.Equal(t, "room booked", found.InternalNotes)
	assert.Equal(t, "organizer@example.com", found.CreatedBy)
	assert.True(t, e.StartAt.Equal(found.StartAt))
}

func TestGormEventRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormEventRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormEventRepository_Update(t *testing.T) {
	repo := NewGormEventRepository(setupTestDB(t))
	ctx := context.Background()

	e := storedEvent("Go Meetup", "Berlin", time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC), event.StatusDraft)
	require.NoError(t, repo.Save(ctx, e))

	e.Status = event.StatusPublished
	e.InternalNotes = "published"
	require.NoError(t, repo.Update(ctx, e))

	found, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, event.StatusPublished, found.Status)
	assert.Equal(t, "published", found.InternalNotes)
}

func TestGormEventRepository_Update_NotFound(t *testing.T) {
	repo := NewGormEventRepository(setupTestDB(t))

	e := storedEvent("Ghost", "Berlin", time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC), event.StatusDraft)
	err := repo.Update(context.Background(), e)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormEventRepository_Query(t *testing.T) {
	repo := NewGormEventRepository(setupTestDB(t))
	seedQueryFixture(t, repo)
	ctx := context.Background()

	t.Run("no filters returns all ordered by start", func(t *testing.T) {
		result, err := repo.Query(ctx, event.Query{})
		require.NoError(t, err)
		require.Len(t, result.Data, 3)
		assert.Equal(t, "Day One", result.Data[0].Title)
		assert.Equal(t, "Day Three", result.Data[2].Title)
		assert.Equal(t, int64(3), result.Pagination.Total)
	})

	t.Run("date range bounds are inclusive", func(t *testing.T) {
		from := dateUTC(2025, 12, 2)
		to := dateUTC(2025, 12, 2)
		result, err := repo.Query(ctx, event.Query{DateFrom: &from, DateTo: &to})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Day Two", result.Data[0].Title)
	})

	t.Run("status filter", func(t *testing.T) {
		result, err := repo.Query(ctx, event.Query{Statuses: []event.EventStatus{event.StatusPublished, event.StatusCancelled}})
		require.NoError(t, err)
		assert.Len(t, result.Data, 2)
	})

	t.Run("location substring is case-insensitive and OR-combined", func(t *testing.T) {
		result, err := repo.Query(ctx, event.Query{Locations: []string{"MUN", "hamburg"}})
		require.NoError(t, err)
		require.Len(t, result.Data, 2)
		assert.Equal(t, "Munich", result.Data[0].Location)
		assert.Equal(t, "Hamburg", result.Data[1].Location)
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := repo.Query(ctx, event.Query{Page: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, result.Data, 2)
		assert.Equal(t, int64(3), result.Pagination.Total)
		assert.Equal(t, 2, result.Pagination.TotalPages)

		result, err = repo.Query(ctx, event.Query{Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Day Three", result.Data[0].Title)
	})

	t.Run("page past the end is empty with correct metadata", func(t *testing.T) {
		result, err := repo.Query(ctx, event.Query{Page: 9, Limit: 2})
		require.NoError(t, err)
		assert.Empty(t, result.Data)
		assert.Equal(t, int64(3), result.Pagination.Total)
	})
}

func TestGormEventRepository_Query_StableTiebreak(t *testing.T) {
	repo := NewGormEventRepository(setupTestDB(t))
	ctx := context.Background()

	start := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, storedEvent("Same Slot", "Berlin", start, event.StatusDraft)))
	}

	first, err := repo.Query(ctx, event.Query{})
	require.NoError(t, err)
	second, err := repo.Query(ctx, event.Query{})
	require.NoError(t, err)

	for i := range first.Data {
		assert.Equal(t, first.Data[i].ID, second.Data[i].ID)
	}
}
