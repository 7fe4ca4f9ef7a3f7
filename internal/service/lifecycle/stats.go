package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

var (
	twelve        = decimal.NewFromInt(12)
	three         = decimal.NewFromInt(3)
	weeksPerMonth = decimal.RequireFromString("4.33")
)

type StatsBuilder struct {
	classifier *Classifier
}

func NewStatsBuilder(classifier *Classifier) *StatsBuilder {
	return &StatsBuilder{
		classifier: classifier,
	}
}

// Build aggregates one owner's items in a single pass. Items whose dates cannot be
// classified are counted in InvalidDates and left out of the date buckets.
func (b *StatsBuilder) Build(items []domain.Item, now time.Time) domain.Stats {
	stats := domain.Stats{
		Total:      len(items),
		ByCategory: make(map[string]int),
		ByClass:    make(map[string]int),
	}

	monthlyCost := decimal.Zero

	for _, item := range items {
		stats.ByCategory[item.CategoryLabel()]++

		class := item.Class
		if !class.IsValid() {
			class = domain.ItemClassDocument
		}
		stats.ByClass[class.String()]++

		classification, err := b.classifier.Classify(item, now)
		if err != nil {
			stats.InvalidDates++
		} else {
			switch classification.Status {
			case domain.StatusExpiring:
				stats.ExpiringSoon++
			case domain.StatusExpired:
				stats.Expired++
			}
		}

		if isActiveSubscription(item, class, now) {
			stats.ActiveSubscriptions++
			monthlyCost = monthlyCost.Add(MonthlyEquivalent(*item.Price, item.BillingCycle))
		}
	}

	stats.MonthlySubscriptionCost = monthlyCost.Round(2).InexactFloat64()

	return stats
}

func isActiveSubscription(item domain.Item, class domain.ItemClass, now time.Time) bool {
	if !class.IsSubscription() || item.Price == nil {
		return false
	}
	return item.RenewalDate == nil || item.RenewalDate.After(now)
}

// MonthlyEquivalent normalizes a price charged every cycle to a monthly amount.
// Missing or unknown cycles are treated as monthly.
func MonthlyEquivalent(price float64, cycle *domain.BillingCycle) decimal.Decimal {
	amount := decimal.NewFromFloat(price)
	if cycle == nil {
		return amount
	}

	switch *cycle {
	case domain.BillingCycleYearly:
		return amount.Div(twelve)
	case domain.BillingCycleQuarterly:
		return amount.Div(three)
	case domain.BillingCycleWeekly:
		return amount.Mul(weeksPerMonth)
	default:
		return amount
	}
}
