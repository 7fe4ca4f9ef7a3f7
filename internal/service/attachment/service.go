package attachment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/observability/metrics"
)

type Options struct {
	UploadURLTTL        time.Duration
	DownloadURLTTL      time.Duration
	MaxSize             int64
	AllowedContentTypes []string
}

type UploadTicket struct {
	Attachment domain.Attachment
	URL        string
	Method     string
	Headers    map[string]string
	ExpiresAt  time.Time
}

type DownloadTicket struct {
	URL       string
	ExpiresAt time.Time
}

type Service struct {
	items        domain.ItemRepository
	attachments  domain.AttachmentRepository
	storage      domain.ObjectStorage
	opts         Options
	vaultMetrics *metrics.VaultMetrics
	now          func() time.Time
}

func NewService(
	items domain.ItemRepository,
	attachments domain.AttachmentRepository,
	storage domain.ObjectStorage,
	opts Options,
	vaultMetrics *metrics.VaultMetrics,
) *Service {
	return &Service{
		items:        items,
		attachments:  attachments,
		storage:      storage,
		opts:         opts,
		vaultMetrics: vaultMetrics,
		now:          time.Now,
	}
}

// RequestUpload registers an attachment on an owned item and returns a
// presigned PUT URL the client uploads the file body to.
func (s *Service) RequestUpload(ctx context.Context, userID, itemID, fileName, contentType string, size int64) (*UploadTicket, error) {
	if _, err := s.items.Get(ctx, userID, itemID); err != nil {
		return nil, err
	}

	fileName = strings.TrimSpace(fileName)
	mediaType, err := s.checkUpload(fileName, contentType, size)
	if err != nil {
		return nil, err
	}

	attachment := domain.Attachment{
		ID:          uuid.NewString(),
		ItemID:      itemID,
		UserID:      userID,
		FileName:    fileName,
		ContentType: mediaType,
		Size:        size,
	}
	attachment.ObjectKey = domain.AttachmentObjectKey(userID, itemID, attachment.ID, fileName)

	issuedAt := s.now()
	url, err := s.storage.PresignUpload(ctx, attachment.ObjectKey, mediaType, s.opts.UploadURLTTL)
	s.recordPresign(ctx, "upload", err)
	if err != nil {
		if errors.Is(err, domain.ErrStorageDisabled) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to presign upload",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	if err := s.attachments.Create(ctx, &attachment); err != nil {
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}

	slog.InfoContext(ctx, "attachment upload requested",
		slog.String("item_id", itemID),
		slog.String("attachment_id", attachment.ID),
		slog.String("content_type", mediaType),
		slog.Int64("size", size),
	)

	return &UploadTicket{
		Attachment: attachment,
		URL:        url,
		Method:     "PUT",
		Headers:    map[string]string{"Content-Type": mediaType},
		ExpiresAt:  issuedAt.Add(s.opts.UploadURLTTL),
	}, nil
}

func (s *Service) RequestDownload(ctx context.Context, userID, attachmentID string) (*DownloadTicket, error) {
	attachment, err := s.attachments.Get(ctx, userID, attachmentID)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now()
	url, err := s.storage.PresignDownload(ctx, attachment.ObjectKey, attachment.FileName, s.opts.DownloadURLTTL)
	s.recordPresign(ctx, "download", err)
	if err != nil {
		if errors.Is(err, domain.ErrStorageDisabled) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	return &DownloadTicket{
		URL:       url,
		ExpiresAt: issuedAt.Add(s.opts.DownloadURLTTL),
	}, nil
}

func (s *Service) List(ctx context.Context, userID, itemID string) ([]domain.Attachment, error) {
	if _, err := s.items.Get(ctx, userID, itemID); err != nil {
		return nil, err
	}

	return s.attachments.ListByItem(ctx, userID, itemID)
}

// Delete removes the stored object, then the record.
func (s *Service) Delete(ctx context.Context, userID, attachmentID string) error {
	attachment, err := s.attachments.Get(ctx, userID, attachmentID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, attachment.ObjectKey); err != nil {
		return fmt.Errorf("failed to delete attachment object: %w", err)
	}

	if err := s.attachments.Delete(ctx, userID, attachmentID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "attachment deleted",
		slog.String("attachment_id", attachmentID),
		slog.String("item_id", attachment.ItemID),
	)

	return nil
}

func (s *Service) checkUpload(fileName, contentType string, size int64) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("%w: fileName is required", domain.ErrInvalidAttachment)
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: size must be positive", domain.ErrInvalidAttachment)
	}
	if s.opts.MaxSize > 0 && size > s.opts.MaxSize {
		return "", fmt.Errorf("%w: size %d exceeds limit of %d bytes", domain.ErrInvalidAttachment, size, s.opts.MaxSize)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: invalid content type %q", domain.ErrInvalidAttachment, contentType)
	}
	if len(s.opts.AllowedContentTypes) > 0 && !slices.Contains(s.opts.AllowedContentTypes, mediaType) {
		return "", fmt.Errorf("%w: content type %q is not allowed", domain.ErrInvalidAttachment, mediaType)
	}

	return mediaType, nil
}

func (s *Service) recordPresign(ctx context.Context, operation string, err error) {
	if s.vaultMetrics == nil {
		return
	}

	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, domain.ErrStorageDisabled):
		outcome = metrics.OutcomeSkipped
	case err != nil:
		outcome = metrics.OutcomeFailure
	}
	s.vaultMetrics.RecordPresign(ctx, operation, outcome)
}
