package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=object_storage.go -destination=object_storage_mock.go -package=domain

type ObjectStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PresignDownload(ctx context.Context, key, fileName string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}
