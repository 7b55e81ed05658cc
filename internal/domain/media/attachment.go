package media

import (
	"context"
	"time"

	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Attachment is an uploaded object tracked alongside its storage key
type Attachment struct {
	ID          uuid.UUID
	Key         string
	FileName    string
	ContentType string
	Size        int64
	UploadedBy  string
	CreatedAt   time.Time
}

// NewAttachment creates an attachment record for a stored object
func NewAttachment(key, fileName, contentType string, size int64) (*Attachment, error) {
	if key == "" {
		return nil, shared.NewDomainError("INVALID_KEY", "Storage key cannot be empty")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Attachment size must be positive")
	}
	return &Attachment{
		ID:          uuid.New(),
		Key:         key,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now(),
	}, nil
}

// Repository persists attachment records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	Save(ctx context.Context, a *Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
