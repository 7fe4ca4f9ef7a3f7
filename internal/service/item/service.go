package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/observability/metrics"
	"github.com/KasumiMercury/primind-vault/internal/service/lifecycle"
)

type Service struct {
	repo         domain.ItemRepository
	storage      domain.ObjectStorage
	classifier   *lifecycle.Classifier
	vaultMetrics *metrics.VaultMetrics
}

func NewService(
	repo domain.ItemRepository,
	storage domain.ObjectStorage,
	classifier *lifecycle.Classifier,
	vaultMetrics *metrics.VaultMetrics,
) *Service {
	return &Service{
		repo:         repo,
		storage:      storage,
		classifier:   classifier,
		vaultMetrics: vaultMetrics,
	}
}

func (s *Service) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := normalize(item); err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		slog.ErrorContext(ctx, "failed to create item",
			slog.String("user_id", item.UserID),
			slog.String("error", err.Error()),
		)
		s.record(ctx, "create", err)
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	slog.InfoContext(ctx, "item created",
		slog.String("item_id", item.ID),
		slog.String("item_class", item.Class.String()),
	)
	s.record(ctx, "create", nil)

	return item, nil
}

// Get returns the item with its classification at now.
func (s *Service) Get(ctx context.Context, userID, id string, now time.Time) (*Detail, error) {
	item, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	detail := s.detail(ctx, *item, now)
	return &detail, nil
}

// List returns the owner's items. A status filter is evaluated at now and
// excludes items whose dates cannot be classified.
func (s *Service) List(ctx context.Context, userID string, filter domain.ItemFilter, now time.Time) ([]Detail, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidItem, filter.Status)
	}

	items, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	details := make([]Detail, 0, len(items))
	for _, item := range items {
		d := s.detail(ctx, item, now)
		if filter.Status != "" && (d.Classification == nil || d.Classification.Status != filter.Status) {
			continue
		}
		details = append(details, d)
	}

	return details, nil
}

func (s *Service) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	existing, err := s.repo.Get(ctx, item.UserID, item.ID)
	if err != nil {
		s.record(ctx, "update", err)
		return nil, err
	}

	if err := normalize(item); err != nil {
		s.record(ctx, "update", err)
		return nil, err
	}
	item.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, item); err != nil {
		s.record(ctx, "update", err)
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.record(ctx, "update", nil)

	return item, nil
}

// Delete removes the item's stored objects first, then the item and its attachment records.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.repo.Get(ctx, userID, id); err != nil {
		s.record(ctx, "delete", err)
		return err
	}

	if err := s.storage.DeletePrefix(ctx, domain.ItemObjectPrefix(userID, id)); err != nil {
		slog.ErrorContext(ctx, "failed to delete item objects",
			slog.String("item_id", id),
			slog.String("error", err.Error()),
		)
		s.record(ctx, "delete", err)
		return fmt.Errorf("failed to delete item objects: %w", err)
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.record(ctx, "delete", err)
		if errors.Is(err, domain.ErrItemNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	slog.InfoContext(ctx, "item deleted",
		slog.String("item_id", id),
	)
	s.record(ctx, "delete", nil)

	return nil
}

func (s *Service) Classify(item domain.Item, now time.Time) (domain.Classification, error) {
	return s.classifier.Classify(item, now)
}

func (s *Service) detail(ctx context.Context, item domain.Item, now time.Time) Detail {
	classification, err := s.classifier.Classify(item, now)
	if err != nil {
		slog.WarnContext(ctx, "item has an invalid date",
			slog.String("item_id", item.ID),
			slog.String("error", err.Error()),
		)
		if s.vaultMetrics != nil {
			s.vaultMetrics.RecordInvalidDates(ctx, "item", 1)
		}
		return Detail{Item: item}
	}

	return Detail{Item: item, Classification: &classification}
}

func (s *Service) record(ctx context.Context, operation string, err error) {
	if s.vaultMetrics == nil {
		return
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	s.vaultMetrics.RecordItemOperation(ctx, operation, outcome)
}
