package lifecycle

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

const (
	// ExpiringWindowDays is the last day count (inclusive) still classified as expiring.
	ExpiringWindowDays = 30

	// HighUrgencyDays is the last day count (inclusive) of an expiring item with high urgency.
	HighUrgencyDays = 7

	millisPerDay = int64(24 * time.Hour / time.Millisecond)
)

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify derives status, remaining days and urgency from the item's relevant date.
// now must be supplied by the caller.
func (c *Classifier) Classify(item domain.Item, now time.Time) (domain.Classification, error) {
	relevant := item.RelevantDate()
	if relevant == nil {
		return domain.Classification{
			Status:  domain.StatusActive,
			Urgency: domain.UrgencyLow,
		}, nil
	}

	if relevant.IsZero() || now.IsZero() {
		return domain.Classification{}, fmt.Errorf("classify item %q: %w", item.ID, domain.ErrInvalidDate)
	}

	days := DaysUntil(*relevant, now)
	result := domain.Classification{
		DaysLeft:     &days,
		RelevantDate: relevant,
	}

	switch {
	case days < 0:
		result.Status = domain.StatusExpired
		result.Urgency = domain.UrgencyHigh
	case days <= ExpiringWindowDays:
		result.Status = domain.StatusExpiring
		if days <= HighUrgencyDays {
			result.Urgency = domain.UrgencyHigh
		} else {
			result.Urgency = domain.UrgencyMedium
		}
	default:
		result.Status = domain.StatusActive
		result.Urgency = domain.UrgencyLow
	}

	return result, nil
}

// DaysUntil returns the millisecond difference target-now in days, rounded up.
// A sub-day negative difference rounds up to 0.
func DaysUntil(target, now time.Time) int {
	diff := target.UnixMilli() - now.UnixMilli()

	days := diff / millisPerDay
	if diff%millisPerDay > 0 {
		days++
	}

	return int(days)
}
