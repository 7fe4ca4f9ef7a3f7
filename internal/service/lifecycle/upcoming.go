package lifecycle

import (
	"time"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

const (
	DefaultUpcomingLimit = 8
	UpcomingHorizon      = ExpiringWindowDays * 24 * time.Hour
)

type UpcomingSelector struct {
	classifier *Classifier
}

func NewUpcomingSelector(classifier *Classifier) *UpcomingSelector {
	return &UpcomingSelector{
		classifier: classifier,
	}
}

// Select keeps the items whose relevant date lies in [now, now+UpcomingHorizon],
// in input order, up to limit. A non-positive limit falls back to DefaultUpcomingLimit.
func (s *UpcomingSelector) Select(items []domain.Item, now time.Time, limit int) []domain.NotificationItem {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	horizonEnd := now.Add(UpcomingHorizon)
	selected := make([]domain.NotificationItem, 0, min(limit, len(items)))

	for _, item := range items {
		if len(selected) >= limit {
			break
		}

		classification, err := s.classifier.Classify(item, now)
		if err != nil || classification.RelevantDate == nil {
			continue
		}

		relevant := *classification.RelevantDate
		if relevant.Before(now) || relevant.After(horizonEnd) {
			continue
		}

		selected = append(selected, domain.NotificationItem{
			ID:             item.ID,
			Name:           item.Name,
			ExpirationDate: item.ExpirationDate,
			RenewalDate:    item.RenewalDate,
			Urgency:        classification.Urgency,
		})
	}

	return selected
}
