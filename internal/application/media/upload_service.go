package media

import (
	"context"
	"fmt"
	"time"

	"github.com/eventhub/backend/internal/domain/media"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageSize bounds uploaded image payloads
const MaxImageSize = 5 << 20 // 5MB

// extensions per accepted content type; doubles as the allow-list
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadImageInput carries an image payload for upload
type UploadImageInput struct {
	FileName    string
	ContentType string
	Data        []byte
	UploadedBy  string
}

// UploadResult describes a stored image
type UploadResult struct {
	AttachmentID string `json:"attachmentId"`
	Key          string `json:"key"`
	URL          string `json:"url"`
}

// UploadService stores uploaded images in object storage and tracks them
// as attachment records.
type UploadService struct {
	storage     ObjectStorage
	attachments media.Repository
	urlExpiry   time.Duration
	logger      *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(storage ObjectStorage, attachments media.Repository, urlExpiry time.Duration, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &UploadService{
		storage:     storage,
		attachments: attachments,
		urlExpiry:   urlExpiry,
		logger:      logger,
	}
}

// UploadImage validates, stores, and records an image upload
func (s *UploadService) UploadImage(ctx context.Context, input UploadImageInput) (*UploadResult, error) {
	ext, ok := imageExtensions[input.ContentType]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_MEDIA_TYPE",
			fmt.Sprintf("Content type %q is not an accepted image format", input.ContentType))
	}
	if len(input.Data) == 0 {
		return nil, shared.NewDomainError("EMPTY_UPLOAD", "Uploaded file is empty")
	}
	if len(input.Data) > MaxImageSize {
		return nil, shared.NewDomainError("UPLOAD_TOO_LARGE",
			fmt.Sprintf("Uploaded file exceeds the %d byte limit", MaxImageSize))
	}

	key := "events/" + uuid.New().String() + ext
	if err := s.storage.Upload(ctx, key, input.Data, input.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	attachment, err := media.NewAttachment(key, input.FileName, input.ContentType, int64(len(input.Data)))
	if err != nil {
		return nil, err
	}
	attachment.UploadedBy = input.UploadedBy

	if err := s.attachments.Save(ctx, attachment); err != nil {
		// The object is orphaned if the record fails; best effort cleanup.
		if delErr := s.storage.DeleteObject(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up orphaned upload",
				zap.String("key", key),
				zap.Error(delErr))
		}
		return nil, err
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		// The upload itself succeeded; the client can fetch a URL later.
		s.logger.Warn("failed to presign download url",
			zap.String("key", key),
			zap.Error(err))
	}

	s.logger.Info("image uploaded",
		zap.String("attachment_id", attachment.ID.String()),
		zap.String("key", key),
		zap.Int("size", len(input.Data)))

	return &UploadResult{
		AttachmentID: attachment.ID.String(),
		Key:          key,
		URL:          url,
	}, nil
}
