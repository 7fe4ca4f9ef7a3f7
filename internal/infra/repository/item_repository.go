package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) domain.ItemRepository {
	return &itemRepository{
		db: db,
	}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	if item == nil {
		return ErrNilRecord
	}
	if item.UserID == "" {
		return ErrMissingOwner
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	rec := toItemRecord(item)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRecord
		}
		return err
	}

	item.CreatedAt = rec.CreatedAt.UTC()
	item.UpdatedAt = rec.UpdatedAt.UTC()

	return nil
}

func (r *itemRepository) Get(ctx context.Context, userID, id string) (*domain.Item, error) {
	var rec itemRecord

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	item := rec.toDomain()
	return &item, nil
}

// ListByUser applies the class and category parts of the filter. Status depends on
// the current time and is left to the caller.
func (r *itemRepository) ListByUser(ctx context.Context, userID string, filter domain.ItemFilter) ([]domain.Item, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	switch filter.Class {
	case domain.ItemClassDocument:
		query = query.Where("(item_class = ? OR item_class IS NULL OR item_class = '')", domain.ItemClassDocument.String())
	case domain.ItemClassSubscription:
		query = query.Where("item_class = ?", domain.ItemClassSubscription.String())
	}

	if category := strings.TrimSpace(filter.Category); category != "" {
		if strings.EqualFold(category, domain.DefaultCategory) {
			query = query.Where("(category IS NULL OR TRIM(category) = '' OR category = ?)", category)
		} else {
			query = query.Where("category = ?", category)
		}
	}

	var recs []itemRecord
	if err := query.Order("created_at DESC, id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}

	return toDomainItems(recs), nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	if item == nil {
		return ErrNilRecord
	}

	rec := toItemRecord(item)
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	res := r.db.WithContext(ctx).
		Model(&rec).
		Where("user_id = ?", rec.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}

	item.UpdatedAt = rec.UpdatedAt.UTC()

	return nil
}

// Delete removes the item and its attachment records in one transaction.
func (r *itemRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ? AND user_id = ?", id, userID).Delete(&attachmentRecord{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&itemRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrItemNotFound
		}

		return nil
	})
}

func (r *itemRepository) ListUpcoming(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Item, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(relevantDateExpr+" BETWEEN ? AND ?", from.UTC(), to.UTC()).
		Order(relevantDateExpr + " ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recs []itemRecord
	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}

	return toDomainItems(recs), nil
}

func (r *itemRepository) ListDue(ctx context.Context, from, to time.Time) ([]domain.Item, error) {
	var recs []itemRecord

	err := r.db.WithContext(ctx).
		Where(relevantDateExpr+" BETWEEN ? AND ?", from.UTC(), to.UTC()).
		Order(relevantDateExpr + " ASC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	return toDomainItems(recs), nil
}

func toDomainItems(recs []itemRecord) []domain.Item {
	items := make([]domain.Item, 0, len(recs))
	for i := range recs {
		items = append(items, recs[i].toDomain())
	}
	return items
}
