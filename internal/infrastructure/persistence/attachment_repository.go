package persistence

import (
	"context"
	"errors"

	"github.com/eventhub/backend/internal/domain/media"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/eventhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements media.Repository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// FindByID finds an attachment by its ID
func (r *GormAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*media.Attachment, error) {
	var model models.AttachmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts a new attachment record
func (r *GormAttachmentRepository) Save(ctx context.Context, a *media.Attachment) error {
	model := models.AttachmentModelFromDomain(a)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes an attachment record
func (r *GormAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AttachmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAttachmentRepository implements media.Repository
var _ media.Repository = (*GormAttachmentRepository)(nil)
