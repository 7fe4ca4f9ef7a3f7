package objectstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

type GCSConfig struct {
	Bucket          string
	CredentialsFile string

	// GoogleAccessID and PrivateKey sign URLs locally. When empty the client
	// credentials are used, falling back to the IAM signBlob API.
	GoogleAccessID string
	PrivateKey     []byte

	ClientOptions []option.ClientOption
}

type GCSStorage struct {
	client *storage.Client
	bucket *storage.BucketHandle
	cfg    GCSConfig
	now    func() time.Time
}

var _ domain.ObjectStorage = (*GCSStorage)(nil)

func NewGCSStorage(ctx context.Context, cfg GCSConfig) (*GCSStorage, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}

	opts := append([]option.ClientOption{}, cfg.ClientOptions...)
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	slog.InfoContext(ctx, "object storage initialized",
		slog.String("type", "gcs"),
		slog.String("bucket", cfg.Bucket),
	)

	return &GCSStorage{
		client: client,
		bucket: client.Bucket(cfg.Bucket),
		cfg:    cfg,
		now:    time.Now,
	}, nil
}

func (s *GCSStorage) PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	opts := s.signOptions(http.MethodPut, expires)
	opts.ContentType = contentType

	signed, err := s.bucket.SignedURL(key, opts)
	if err != nil {
		slog.WarnContext(ctx, "failed to sign upload url",
			slog.String("error", err.Error()),
			slog.String("object_key", key),
		)
		return "", fmt.Errorf("sign upload url: %w", err)
	}

	return signed, nil
}

// PresignDownload signs a GET whose response is served as an attachment named fileName.
func (s *GCSStorage) PresignDownload(ctx context.Context, key, fileName string, expires time.Duration) (string, error) {
	opts := s.signOptions(http.MethodGet, expires)
	if fileName != "" {
		opts.QueryParameters = url.Values{
			"response-content-disposition": {mime.FormatMediaType("attachment", map[string]string{"filename": fileName})},
		}
	}

	signed, err := s.bucket.SignedURL(key, opts)
	if err != nil {
		slog.WarnContext(ctx, "failed to sign download url",
			slog.String("error", err.Error()),
			slog.String("object_key", key),
		)
		return "", fmt.Errorf("sign download url: %w", err)
	}

	return signed, nil
}

// Delete treats a missing object as already deleted.
func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Object(key).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (s *GCSStorage) DeletePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return ErrEmptyPrefix
	}

	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	deleted := 0

	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("list objects under %q: %w", prefix, err)
		}

		if err := s.Delete(ctx, attrs.Name); err != nil {
			return err
		}
		deleted++
	}

	slog.DebugContext(ctx, "deleted objects by prefix",
		slog.String("prefix", prefix),
		slog.Int("count", deleted),
	)

	return nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func (s *GCSStorage) signOptions(method string, expires time.Duration) *storage.SignedURLOptions {
	return &storage.SignedURLOptions{
		GoogleAccessID: s.cfg.GoogleAccessID,
		PrivateKey:     s.cfg.PrivateKey,
		Method:         method,
		Expires:        s.now().Add(expires),
		Scheme:         storage.SigningSchemeV4,
	}
}
