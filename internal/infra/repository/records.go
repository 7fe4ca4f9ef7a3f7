package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

// relevantDateExpr mirrors Item.RelevantDate in SQL.
const relevantDateExpr = "COALESCE(expiration_date, renewal_date)"

type userRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"size:320;not null;uniqueIndex"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
}

func (userRecord) TableName() string {
	return "users"
}

type itemRecord struct {
	ID             string            `gorm:"primaryKey;size:36"`
	UserID         string            `gorm:"size:36;not null;index"`
	Name           string            `gorm:"size:255;not null"`
	Category       *string           `gorm:"size:100"`
	ItemClass      *string           `gorm:"size:20"`
	TemplateKey    string            `gorm:"size:64"`
	Fields         map[string]string `gorm:"serializer:json;type:text"`
	Notes          string            `gorm:"type:text"`
	ExpirationDate *time.Time        `gorm:"index"`
	RenewalDate    *time.Time        `gorm:"index"`
	Price          *float64
	Currency       string  `gorm:"size:3"`
	BillingCycle   *string `gorm:"size:20"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (itemRecord) TableName() string {
	return "items"
}

type attachmentRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	ItemID      string `gorm:"size:36;not null;index"`
	UserID      string `gorm:"size:36;not null;index"`
	FileName    string `gorm:"size:255;not null"`
	ContentType string `gorm:"size:127"`
	Size        int64
	ObjectKey   string `gorm:"size:1024;not null"`
	CreatedAt   time.Time
}

func (attachmentRecord) TableName() string {
	return "attachments"
}

// AutoMigrate creates or updates the tables backing the repositories.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&userRecord{}, &itemRecord{}, &attachmentRecord{})
}

func toItemRecord(item *domain.Item) itemRecord {
	rec := itemRecord{
		ID:             item.ID,
		UserID:         item.UserID,
		Name:           item.Name,
		Category:       item.Category,
		TemplateKey:    item.TemplateKey,
		Fields:         item.Fields,
		Notes:          item.Notes,
		ExpirationDate: utcPtr(item.ExpirationDate),
		RenewalDate:    utcPtr(item.RenewalDate),
		Price:          item.Price,
		Currency:       item.Currency,
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}

	if item.Class != "" {
		class := item.Class.String()
		rec.ItemClass = &class
	}
	if item.BillingCycle != nil {
		cycle := item.BillingCycle.String()
		rec.BillingCycle = &cycle
	}

	return rec
}

func (r *itemRecord) toDomain() domain.Item {
	item := domain.Item{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		Category:       r.Category,
		Class:          domain.ItemClassDocument,
		TemplateKey:    r.TemplateKey,
		Fields:         r.Fields,
		Notes:          r.Notes,
		ExpirationDate: utcPtr(r.ExpirationDate),
		RenewalDate:    utcPtr(r.RenewalDate),
		Price:          r.Price,
		Currency:       r.Currency,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}

	if r.ItemClass != nil {
		if class, err := domain.ParseItemClass(*r.ItemClass); err == nil {
			item.Class = class
		}
	}
	if r.BillingCycle != nil && *r.BillingCycle != "" {
		cycle := domain.BillingCycle(*r.BillingCycle)
		item.BillingCycle = &cycle
	}

	return item
}

func toAttachmentRecord(a *domain.Attachment) attachmentRecord {
	return attachmentRecord{
		ID:          a.ID,
		ItemID:      a.ItemID,
		UserID:      a.UserID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		ObjectKey:   a.ObjectKey,
		CreatedAt:   a.CreatedAt.UTC(),
	}
}

func (r *attachmentRecord) toDomain() domain.Attachment {
	return domain.Attachment{
		ID:          r.ID,
		ItemID:      r.ItemID,
		UserID:      r.UserID,
		FileName:    r.FileName,
		ContentType: r.ContentType,
		Size:        r.Size,
		ObjectKey:   r.ObjectKey,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
