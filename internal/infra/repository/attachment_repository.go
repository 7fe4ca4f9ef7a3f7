package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) domain.AttachmentRepository {
	return &attachmentRepository{
		db: db,
	}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if attachment == nil {
		return ErrNilRecord
	}
	if attachment.UserID == "" {
		return ErrMissingOwner
	}
	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}

	rec := toAttachmentRecord(attachment)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRecord
		}
		return err
	}

	attachment.CreatedAt = rec.CreatedAt.UTC()

	return nil
}

func (r *attachmentRepository) Get(ctx context.Context, userID, id string) (*domain.Attachment, error) {
	var rec attachmentRecord

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, err
	}

	attachment := rec.toDomain()
	return &attachment, nil
}

func (r *attachmentRepository) ListByItem(ctx context.Context, userID, itemID string) ([]domain.Attachment, error) {
	var recs []attachmentRecord

	err := r.db.WithContext(ctx).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	attachments := make([]domain.Attachment, 0, len(recs))
	for i := range recs {
		attachments = append(attachments, recs[i].toDomain())
	}

	return attachments, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&attachmentRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAttachmentNotFound
	}

	return nil
}
