package media

import (
	"context"
	"time"
)

// ObjectStorage abstracts the object store used for uploaded media
type ObjectStorage interface {
	// Upload stores data under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	// GenerateDownloadURL returns a presigned GET URL and its expiry
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObject removes the object under the given key
	DeleteObject(ctx context.Context, storageKey string) error
}
