package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/observability/metrics"
	"github.com/KasumiMercury/primind-vault/internal/observability/tracing"
	"github.com/KasumiMercury/primind-vault/internal/service/lifecycle"
)

// MaxUpcomingLimit caps the number of notifications a single request may ask for.
const MaxUpcomingLimit = 50

type Service struct {
	repo         domain.ItemRepository
	statsBuilder *lifecycle.StatsBuilder
	selector     *lifecycle.UpcomingSelector
	vaultMetrics *metrics.VaultMetrics
}

func NewService(
	repo domain.ItemRepository,
	classifier *lifecycle.Classifier,
	vaultMetrics *metrics.VaultMetrics,
) *Service {
	return &Service{
		repo:         repo,
		statsBuilder: lifecycle.NewStatsBuilder(classifier),
		selector:     lifecycle.NewUpcomingSelector(classifier),
		vaultMetrics: vaultMetrics,
	}
}

func (s *Service) Stats(ctx context.Context, userID string, now time.Time) (domain.Stats, error) {
	ctx, span := tracing.StartStatsSpan(ctx, userID)
	defer span.End()

	items, err := s.repo.ListByUser(ctx, userID, domain.ItemFilter{})
	if err != nil {
		err = fmt.Errorf("failed to load items: %w", err)
		tracing.RecordError(span, err)
		return domain.Stats{}, err
	}

	start := time.Now()
	stats := s.statsBuilder.Build(items, now)

	if s.vaultMetrics != nil {
		s.vaultMetrics.RecordStatsDuration(ctx, len(items), time.Since(start))
		s.vaultMetrics.RecordInvalidDates(ctx, "stats", stats.InvalidDates)
	}

	if stats.InvalidDates > 0 {
		slog.WarnContext(ctx, "items with invalid dates left out of stats",
			slog.String("user_id", userID),
			slog.Int("invalid_count", stats.InvalidDates),
		)
	}

	slog.DebugContext(ctx, "stats built",
		slog.String("user_id", userID),
		slog.Int("total", stats.Total),
		slog.Int("expiring_soon", stats.ExpiringSoon),
		slog.Int("expired", stats.Expired),
	)

	tracing.RecordResult(span, nil)

	return stats, nil
}

// Upcoming returns the owner's items due within lifecycle.UpcomingHorizon of now,
// in relevant date order.
func (s *Service) Upcoming(ctx context.Context, userID string, now time.Time, limit int) ([]domain.NotificationItem, error) {
	limit = clampLimit(limit)

	ctx, span := tracing.StartUpcomingSpan(ctx, userID, limit)
	defer span.End()

	items, err := s.repo.ListUpcoming(ctx, userID, now, now.Add(lifecycle.UpcomingHorizon), limit)
	if err != nil {
		err = fmt.Errorf("failed to load upcoming items: %w", err)
		tracing.RecordError(span, err)
		return nil, err
	}

	selected := s.selector.Select(items, now, limit)

	if s.vaultMetrics != nil {
		s.vaultMetrics.RecordUpcomingSelected(ctx, len(selected))
	}

	tracing.RecordResult(span, nil)

	return selected, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return lifecycle.DefaultUpcomingLimit
	}
	return min(limit, MaxUpcomingLimit)
}
