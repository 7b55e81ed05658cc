package models

import (
	"time"

	"github.com/eventhub/backend/internal/domain/media"
	"github.com/google/uuid"
)

// AttachmentModel is the persistence representation of an uploaded object
type AttachmentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Key         string    `gorm:"size:512;not null;uniqueIndex"`
	FileName    string    `gorm:"size:255"`
	ContentType string    `gorm:"size:100"`
	Size        int64     `gorm:"not null"`
	UploadedBy  string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for AttachmentModel
func (AttachmentModel) TableName() string {
	return "attachments"
}

// ToDomain converts AttachmentModel to a domain attachment
func (m *AttachmentModel) ToDomain() *media.Attachment {
	return &media.Attachment{
		ID:          m.ID,
		Key:         m.Key,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// AttachmentModelFromDomain converts a domain attachment to its persistence model
func AttachmentModelFromDomain(a *media.Attachment) *AttachmentModel {
	return &AttachmentModel{
		ID:          a.ID,
		Key:         a.Key,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		UploadedBy:  a.UploadedBy,
		CreatedAt:   a.CreatedAt,
	}
}
