package summary

import (
	"context"
	"strings"

	"github.com/eventhub/backend/internal/domain/event"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CacheStatus reports which delivery path a summary request took
type CacheStatus string

const (
	CacheHit  CacheStatus = "HIT"
	CacheMiss CacheStatus = "MISS"
)

// Orchestrator drives summary delivery: cache lookup, streamed generation
// on miss, and cache population after a complete stream.
type Orchestrator struct {
	events event.Repository
	cache  Cache
	gen    *Generator
	logger *zap.Logger
}

// NewOrchestrator creates a summary delivery orchestrator
func NewOrchestrator(events event.Repository, cache Cache, gen *Generator, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		events: events,
		cache:  cache,
		gen:    gen,
		logger: logger,
	}
}

// Delivery is a prepared summary response. Status is known before any
// fragment is produced so the transport can advertise it ahead of the body.
type Delivery struct {
	Status      CacheStatus
	fingerprint string
	cachedText  string
	projection  event.PublicEvent
	orch        *Orchestrator
}

// Prepare resolves the target event and consults the cache. It fails fast
// with shared.ErrNotFound for an unknown ID and shared.ErrEventNotPublic
// for an event without a public projection, before any streaming begins.
func (o *Orchestrator) Prepare(ctx context.Context, eventID uuid.UUID) (*Delivery, error) {
	ev, err := o.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	public, ok := ev.ToPublic()
	if !ok {
		return nil, shared.ErrEventNotPublic
	}

	fp := public.Fingerprint()
	d := &Delivery{
		Status:      CacheMiss,
		fingerprint: fp,
		projection:  public,
		orch:        o,
	}

	text, found, err := o.cache.Get(ctx, fp)
	if err != nil {
		// A broken cache degrades to generation; it must not fail the request.
		o.logger.Warn("summary cache read failed",
			zap.String("fingerprint", fp),
			zap.Error(err))
	} else if found {
		d.Status = CacheHit
		d.cachedText = text
	}

	o.logger.Debug("summary delivery prepared",
		zap.String("event_id", eventID.String()),
		zap.String("fingerprint", fp),
		zap.String("cache", string(d.Status)))
	return d, nil
}

// Run delivers the summary through emit. On a hit the full cached text is
// emitted as a single fragment. On a miss fragments are emitted as they
// are generated and the assembled text is written to the cache only after
// the stream completed; cancellation or an emit failure mid-stream leaves
// the cache untouched.
func (d *Delivery) Run(ctx context.Context, emit func(fragment string) error) error {
	if d.Status == CacheHit {
		return emit(d.cachedText)
	}

	stream := d.orch.gen.Stream(ctx, d.projection)
	var assembled strings.Builder

	for {
		frag, ok := stream.Next()
		if !ok {
			break
		}
		if assembled.Len() > 0 {
			assembled.WriteByte(' ')
		}
		assembled.WriteString(frag.Text)
		if err := emit(frag.Text); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		return err
	}

	if err := d.orch.cache.Set(ctx, d.fingerprint, assembled.String()); err != nil {
		// The summary was already delivered in full; a failed cache write
		// only costs the next request a regeneration.
		d.orch.logger.Warn("summary cache write failed",
			zap.String("fingerprint", d.fingerprint),
			zap.Error(err))
	}
	return nil
}
