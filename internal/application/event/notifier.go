package event

import (
	"context"

	"github.com/eventhub/backend/internal/domain/event"
	"go.uber.org/zap"
)

// Notifier receives event lifecycle announcements. Implementations must
// not block the calling request; delivery is best effort and failures
// stay inside the implementation.
type Notifier interface {
	EventCreated(ctx context.Context, e *event.Event)
	EventPublished(ctx context.Context, e *event.Event)
	EventCancelled(ctx context.Context, e *event.Event)
}

// LogNotifier announces lifecycle changes to the structured log. It is
// the default sink when no external channel (email, webhook) is wired.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a Notifier writing to the given logger
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) EventCreated(_ context.Context, e *event.Event) {
	n.logger.Info("notification: event created",
		zap.String("event_id", e.ID.String()),
		zap.String("title", e.Title),
		zap.String("status", e.Status.String()))
}

func (n *LogNotifier) EventPublished(_ context.Context, e *event.Event) {
	n.logger.Info("notification: event published",
		zap.String("event_id", e.ID.String()),
		zap.String("title", e.Title),
		zap.Time("start_at", e.StartAt))
}

func (n *LogNotifier) EventCancelled(_ context.Context, e *event.Event) {
	n.logger.Info("notification: event cancelled",
		zap.String("event_id", e.ID.String()),
		zap.String("title", e.Title))
}
