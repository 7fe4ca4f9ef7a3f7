package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, userID, id string) (*Item, error)
	ListByUser(ctx context.Context, userID string, filter ItemFilter) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, userID, id string) error
	// ListUpcoming returns at most limit items of one owner whose relevant date is within [from, to].
	ListUpcoming(ctx context.Context, userID string, from, to time.Time, limit int) ([]Item, error)
	// ListDue returns items of every owner whose relevant date is within [from, to].
	ListDue(ctx context.Context, from, to time.Time) ([]Item, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *Attachment) error
	Get(ctx context.Context, userID, id string) (*Attachment, error)
	ListByItem(ctx context.Context, userID, itemID string) ([]Attachment, error)
	Delete(ctx context.Context, userID, id string) error
}

type UserRepository interface {
	FindOrCreateByEmail(ctx context.Context, email, name string) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
}
