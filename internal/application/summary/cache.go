package summary

import "context"

// Cache is the content-addressed store for generated summaries, keyed by
// the event fingerprint. Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached summary text. The second return value is
	// false when the fingerprint is unknown or the entry has expired.
	Get(ctx context.Context, fingerprint string) (string, bool, error)
	// Set inserts or overwrites the entry, stamping the current time
	Set(ctx context.Context, fingerprint, text string) error
	// Invalidate removes the entry unconditionally
	Invalidate(ctx context.Context, fingerprint string) error
}
