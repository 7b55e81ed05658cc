package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	eventapp "github.com/eventhub/backend/internal/application/event"
	"github.com/eventhub/backend/internal/application/summary"
	"github.com/eventhub/backend/internal/domain/event"
	"github.com/eventhub/backend/internal/infrastructure/cache"
	"github.com/eventhub/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type publicTestEnv struct {
	repo   *persistence.MemoryEventRepository
	cache  *cache.InMemorySummaryCache
	router *gin.Engine
}

func newPublicTestEnv(t *testing.T) *publicTestEnv {
	t.Helper()

	repo := persistence.NewMemoryEventRepository()
	summaryCache := cache.NewInMemorySummaryCache(time.Hour)
	t.Cleanup(func() { _ = summaryCache.Close() })

	service := eventapp.NewService(repo, summaryCache, zap.NewNop())
	generator := summary.NewGenerator(summary.WithFragmentDelay(0, 0))
	orchestrator := summary.NewOrchestrator(repo, summaryCache, generator, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	NewPublicEventHandler(service, orchestrator).RegisterRoutes(api)

	return &publicTestEnv{repo: repo, cache: summaryCache, router: router}
}

// ============================================================================
// Public listing
// ============================================================================

func TestPublicEventHandler_List_HidesDrafts(t *testing.T) {
	env := newPublicTestEnv(t)
	seedEvent(t, env.repo, "Secret Draft", "Berlin", time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC), event.StatusDraft)
	seedEvent(t, env.repo, "Published", "Munich", time.Date(2026, 12, 2, 10, 0, 0, 0, time.UTC), event.StatusPublished)
	seedEvent(t, env.repo, "Cancelled", "Hamburg", time.Date(2026, 12, 3, 10, 0, 0, 0, time.UTC), event.StatusCancelled)

	w := doJSON(env.router, http.MethodGet, "/api/v1/public/events", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.NotContains(t, w.Body.String(), "Secret Draft")
}

func TestPublicEventHandler_List_IgnoresStatusFilter(t *testing.T) {
	env := newPublicTestEnv(t)
	seedEvent(t, env.repo, "Secret Draft", "Berlin", time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC), event.StatusDraft)
	seedEvent(t, env.repo, "Published", "Munich", time.Date(2026, 12, 2, 10, 0, 0, 0, time.UTC), event.StatusPublished)

	// Trying to request drafts has no effect on the public surface.
	w := doJSON(env.router, http.MethodGet, "/api/v1/public/events?status=DRAFT", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.NotContains(t, w.Body.String(), "Secret Draft")
}

func TestPublicEventHandler_List_RedactsInternalFields(t *testing.T) {
	env := newPublicTestEnv(t)
	e := seedEvent(t, env.repo, "Published", "Munich", time.Date(2026, 12, 2, 10, 0, 0, 0, time.UTC), event.StatusPublished)
	e.InternalNotes = "catering budget is tight"
	e.CreatedBy = "admin@example.com"
	require.NoError(t, env.repo.Update(context.Background(), e))

	w := doJSON(env.router, http.MethodGet, "/api/v1/public/events", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "catering budget")
	assert.NotContains(t, w.Body.String(), "admin@example.com")
	assert.Contains(t, w.Body.String(), "isUpcoming")
}

// ============================================================================
// Summary streaming
// ============================================================================

func streamSummary(env *publicTestEnv, id string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/events/"+id+"/summary", nil)
	env.router.ServeHTTP(w, req)
	return w
}

func TestPublicEventHandler_StreamSummary_Miss(t *testing.T) {
	env := newPublicTestEnv(t)
	e := seedEvent(t, env.repo, "Go Conference", "Berlin", time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC), event.StatusPublished)

	w := streamSummary(env, e.ID.String())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get(SummaryCacheHeader))
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no", w.Header().Get("X-Accel-Buffering"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "data: "), "stream starts with a data event")
	assert.Contains(t, body, "Go Conference")
	assert.Contains(t, body, "event: done")
	assert.Greater(t, strings.Count(body, "data: "), 2, "summary arrives in multiple fragments")
}

func TestPublicEventHandler_StreamSummary_HitAfterMiss(t *testing.T) {
	env := newPublicTestEnv(t)
	e := seedEvent(t, env.repo, "Go Conference", "Berlin", time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC), event.StatusPublished)

	first := streamSummary(env, e.ID.String())
	require.Equal(t, "MISS", first.Header().Get(SummaryCacheHeader))

	second := streamSummary(env, e.ID.String())
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(SummaryCacheHeader))

	body := second.Body.String()
	// A hit is a single data event carrying the full cached text, followed
	// by the done marker's data line.
	assert.Equal(t, 2, strings.Count(body, "data: "))
	assert.Contains(t, body, "event: done")
	assert.Contains(t, body, "Go Conference")
}

func TestPublicEventHandler_StreamSummary_DraftIsNotFound(t *testing.T) {
	env := newPublicTestEnv(t)
	e := seedEvent(t, env.repo, "Secret Draft", "Berlin", time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC), event.StatusDraft)

	w := streamSummary(env, e.ID.String())

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "EVENT_NOT_PUBLIC", resp.Error.Code)
}

func TestPublicEventHandler_StreamSummary_UnknownEvent(t *testing.T) {
	env := newPublicTestEnv(t)

	w := streamSummary(env, uuid.New().String())

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicEventHandler_StreamSummary_CancelledEventStreams(t *testing.T) {
	env := newPublicTestEnv(t)
	e := seedEvent(t, env.repo, "Axed Summit", "Berlin", time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC), event.StatusCancelled)

	w := streamSummary(env, e.ID.String())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cancelled")
}
