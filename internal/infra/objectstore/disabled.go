package objectstore

import (
	"context"
	"time"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

// disabledStorage backs deployments without a bucket. Deletes succeed so items
// can still be removed.
type disabledStorage struct{}

func NewDisabledStorage() domain.ObjectStorage {
	return &disabledStorage{}
}

func (d *disabledStorage) PresignUpload(_ context.Context, _, _ string, _ time.Duration) (string, error) {
	return "", domain.ErrStorageDisabled
}

func (d *disabledStorage) PresignDownload(_ context.Context, _, _ string, _ time.Duration) (string, error) {
	return "", domain.ErrStorageDisabled
}

func (d *disabledStorage) Delete(_ context.Context, _ string) error {
	return nil
}

func (d *disabledStorage) DeletePrefix(_ context.Context, _ string) error {
	return nil
}
