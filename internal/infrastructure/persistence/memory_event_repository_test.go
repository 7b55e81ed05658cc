package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/eventhub/backend/internal/domain/event"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEventRepository_SaveAndFindByID(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	e := storedEvent("Go Meetup", "Berlin", time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC), event.StatusDraft)
	require.NoError(t, repo.Save(ctx, e))

	found, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, found.ID)

	// The store hands out copies, not shared pointers.
	found.Title = "mutated"
	again, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Meetup", again.Title)
}

func TestMemoryEventRepository_SaveDuplicate(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	e := storedEvent("Go Meetup", "Berlin", time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC), event.StatusDraft)
	require.NoError(t, repo.Save(ctx, e))
	assert.ErrorIs(t, repo.Save(ctx, e), shared.ErrAlreadyExists)
}

func TestMemoryEventRepository_Update(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	e := storedEvent("Go Meetup", "Berlin", time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC), event.StatusDraft)
	require.NoError(t, repo.Save(ctx, e))

	e.Status = event.StatusPublished
	require.NoError(t, repo.Update(ctx, e))

	found, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, event.StatusPublished, found.Status)

	missing := storedEvent("Ghost", "Berlin", e.StartAt, event.StatusDraft)
	assert.ErrorIs(t, repo.Update(ctx, missing), shared.ErrNotFound)
}

func TestMemoryEventRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryEventRepository()

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMemoryEventRepository_Query(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storedEvent("Day One", "Berlin", time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC), event.StatusDraft)))
	require.NoError(t, repo.Save(ctx, storedEvent("Day Two", "Munich", time.Date(2025, 12, 2, 10, 0, 0, 0, time.UTC), event.StatusPublished)))

	result, err := repo.Query(ctx, event.Query{Statuses: []event.EventStatus{event.StatusPublished}})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Day Two", result.Data[0].Title)

	all, err := repo.Query(ctx, event.Query{})
	require.NoError(t, err)
	require.Len(t, all.Data, 2)
	assert.Equal(t, "Day One", all.Data[0].Title, "results are ordered by start time")
}

func TestMemoryEventRepository_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := storedEvent("Concurrent", "Berlin", time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC), event.StatusDraft)
			require.NoError(t, repo.Save(ctx, e))
			_, _ = repo.Query(ctx, event.Query{})
			e.Status = event.StatusPublished
			require.NoError(t, repo.Update(ctx, e))
		}()
	}
	wg.Wait()

	result, err := repo.Query(ctx, event.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.Pagination.Total)
}
