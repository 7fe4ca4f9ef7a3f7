package lifecycle

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func cyclePtr(c domain.BillingCycle) *domain.BillingCycle {
	return &c
}

func TestStatsBuilder_Build(t *testing.T) {
	builder := NewStatsBuilder(NewClassifier())
	now := referenceNow
	day := 24 * time.Hour

	items := []domain.Item{
		{
			ID:             "passport",
			Category:       strPtr("Identity"),
			Class:          domain.ItemClassDocument,
			ExpirationDate: timePtr(now.Add(5 * day)),
		},
		{
			ID:             "old-id",
			Category:       strPtr("Identity"),
			Class:          domain.ItemClassDocument,
			ExpirationDate: timePtr(now.Add(-40 * day)),
		},
		{
			ID:    "no-category",
			Class: domain.ItemClassDocument,
		},
		{
			ID:           "streaming",
			Category:     strPtr("Entertainment"),
			Class:        domain.ItemClassSubscription,
			Price:        floatPtr(12),
			BillingCycle: cyclePtr(domain.BillingCycleYearly),
			RenewalDate:  timePtr(now.Add(10 * day)),
		},
		{
			ID:           "lapsed",
			Category:     strPtr("Entertainment"),
			Class:        domain.ItemClassSubscription,
			Price:        floatPtr(50),
			BillingCycle: cyclePtr(domain.BillingCycleMonthly),
			RenewalDate:  timePtr(now.Add(-2 * day)),
		},
		{
			ID:       "free-trial",
			Category: strPtr("   "),
			Class:    domain.ItemClassSubscription,
		},
	}

	got := builder.Build(items, now)

	if got.Total != 6 {
		t.Errorf("Total = %d, want 6", got.Total)
	}

	wantCategories := map[string]int{"Identity": 2, "Other": 2, "Entertainment": 2}
	for category, want := range wantCategories {
		if got.ByCategory[category] != want {
			t.Errorf("ByCategory[%q] = %d, want %d", category, got.ByCategory[category], want)
		}
	}
	if len(got.ByCategory) != len(wantCategories) {
		t.Errorf("ByCategory has %d keys, want %d: %v", len(got.ByCategory), len(wantCategories), got.ByCategory)
	}

	if got.ByClass["document"] != 3 || got.ByClass["subscription"] != 3 {
		t.Errorf("ByClass = %v, want document=3 subscription=3", got.ByClass)
	}

	// passport (5d) and streaming (10d) are expiring; old-id and lapsed are expired.
	if got.ExpiringSoon != 2 {
		t.Errorf("ExpiringSoon = %d, want 2", got.ExpiringSoon)
	}
	if got.Expired != 2 {
		t.Errorf("Expired = %d, want 2", got.Expired)
	}

	if got.ActiveSubscriptions != 1 {
		t.Errorf("ActiveSubscriptions = %d, want 1", got.ActiveSubscriptions)
	}
	if got.MonthlySubscriptionCost != 1.0 {
		t.Errorf("MonthlySubscriptionCost = %v, want 1.0", got.MonthlySubscriptionCost)
	}
	if got.InvalidDates != 0 {
		t.Errorf("InvalidDates = %d, want 0", got.InvalidDates)
	}
}

func TestStatsBuilder_BuildMonthlyCost(t *testing.T) {
	builder := NewStatsBuilder(NewClassifier())
	now := referenceNow
	future := timePtr(now.Add(10 * 24 * time.Hour))

	tests := []struct {
		name  string
		price float64
		cycle *domain.BillingCycle
		want  float64
	}{
		{name: "monthly", price: 15.5, cycle: cyclePtr(domain.BillingCycleMonthly), want: 15.5},
		{name: "yearly", price: 12, cycle: cyclePtr(domain.BillingCycleYearly), want: 1.0},
		{name: "yearly rounds half up", price: 100, cycle: cyclePtr(domain.BillingCycleYearly), want: 8.33},
		{name: "quarterly", price: 30, cycle: cyclePtr(domain.BillingCycleQuarterly), want: 10},
		{name: "weekly", price: 9.99, cycle: cyclePtr(domain.BillingCycleWeekly), want: 43.26},
		{name: "missing cycle is monthly", price: 7.25, cycle: nil, want: 7.25},
		{name: "unknown cycle is monthly", price: 4, cycle: cyclePtr(domain.BillingCycle("daily")), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []domain.Item{{
				ID:           "sub",
				Class:        domain.ItemClassSubscription,
				Price:        floatPtr(tt.price),
				BillingCycle: tt.cycle,
				RenewalDate:  future,
			}}

			got := builder.Build(items, now)
			if got.MonthlySubscriptionCost != tt.want {
				t.Errorf("MonthlySubscriptionCost = %v, want %v", got.MonthlySubscriptionCost, tt.want)
			}
			if got.ActiveSubscriptions != 1 {
				t.Errorf("ActiveSubscriptions = %d, want 1", got.ActiveSubscriptions)
			}
		})
	}
}

func TestStatsBuilder_BuildActiveSubscriptions(t *testing.T) {
	builder := NewStatsBuilder(NewClassifier())
	now := referenceNow

	tests := []struct {
		name    string
		item    domain.Item
		wantSub int
	}{
		{
			name:    "no renewal date counts",
			item:    domain.Item{Class: domain.ItemClassSubscription, Price: floatPtr(5)},
			wantSub: 1,
		},
		{
			name:    "renewal exactly now does not count",
			item:    domain.Item{Class: domain.ItemClassSubscription, Price: floatPtr(5), RenewalDate: timePtr(now)},
			wantSub: 0,
		},
		{
			name:    "missing price does not count",
			item:    domain.Item{Class: domain.ItemClassSubscription},
			wantSub: 0,
		},
		{
			name:    "documents never count",
			item:    domain.Item{Class: domain.ItemClassDocument, Price: floatPtr(5)},
			wantSub: 0,
		},
		{
			name:    "unset class is aggregated as document",
			item:    domain.Item{Price: floatPtr(5)},
			wantSub: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := builder.Build([]domain.Item{tt.item}, now)
			if got.ActiveSubscriptions != tt.wantSub {
				t.Errorf("ActiveSubscriptions = %d, want %d", got.ActiveSubscriptions, tt.wantSub)
			}
		})
	}
}

func TestStatsBuilder_BuildIsAdditive(t *testing.T) {
	builder := NewStatsBuilder(NewClassifier())
	now := referenceNow
	day := 24 * time.Hour

	a := []domain.Item{
		{ID: "a1", Category: strPtr("Identity"), Class: domain.ItemClassDocument, ExpirationDate: timePtr(now.Add(3 * day))},
		{ID: "a2", Class: domain.ItemClassSubscription, Price: floatPtr(9.99), BillingCycle: cyclePtr(domain.BillingCycleWeekly)},
	}
	b := []domain.Item{
		{ID: "b1", Category: strPtr("Identity"), Class: domain.ItemClassDocument, ExpirationDate: timePtr(now.Add(-3 * day))},
		{ID: "b2", Class: domain.ItemClassSubscription, Price: floatPtr(30), BillingCycle: cyclePtr(domain.BillingCycleQuarterly)},
	}

	statsA := builder.Build(a, now)
	statsB := builder.Build(b, now)
	combined := builder.Build(append(append([]domain.Item{}, a...), b...), now)

	if combined.Total != statsA.Total+statsB.Total {
		t.Errorf("Total = %d, want %d", combined.Total, statsA.Total+statsB.Total)
	}
	if combined.Expired != statsA.Expired+statsB.Expired {
		t.Errorf("Expired = %d, want %d", combined.Expired, statsA.Expired+statsB.Expired)
	}
	if combined.ExpiringSoon != statsA.ExpiringSoon+statsB.ExpiringSoon {
		t.Errorf("ExpiringSoon = %d, want %d", combined.ExpiringSoon, statsA.ExpiringSoon+statsB.ExpiringSoon)
	}
	if combined.ByCategory["Identity"] != statsA.ByCategory["Identity"]+statsB.ByCategory["Identity"] {
		t.Errorf("ByCategory[Identity] = %d, want %d", combined.ByCategory["Identity"], statsA.ByCategory["Identity"]+statsB.ByCategory["Identity"])
	}
	if combined.ByClass["subscription"] != statsA.ByClass["subscription"]+statsB.ByClass["subscription"] {
		t.Errorf("ByClass[subscription] = %d, want %d", combined.ByClass["subscription"], statsA.ByClass["subscription"]+statsB.ByClass["subscription"])
	}
	if combined.MonthlySubscriptionCost != 53.26 {
		t.Errorf("MonthlySubscriptionCost = %v, want 53.26", combined.MonthlySubscriptionCost)
	}
}

func TestStatsBuilder_BuildCountsInvalidDates(t *testing.T) {
	builder := NewStatsBuilder(NewClassifier())

	items := []domain.Item{
		{ID: "broken", Class: domain.ItemClassDocument, ExpirationDate: &time.Time{}},
		{ID: "fine", Class: domain.ItemClassDocument},
	}

	got := builder.Build(items, referenceNow)
	if got.Total != 2 {
		t.Errorf("Total = %d, want 2", got.Total)
	}
	if got.InvalidDates != 1 {
		t.Errorf("InvalidDates = %d, want 1", got.InvalidDates)
	}
	if got.Expired != 0 || got.ExpiringSoon != 0 {
		t.Errorf("Expired = %d, ExpiringSoon = %d, want 0 and 0", got.Expired, got.ExpiringSoon)
	}
}

func TestStatsBuilder_BuildEmpty(t *testing.T) {
	builder := NewStatsBuilder(NewClassifier())

	got := builder.Build(nil, referenceNow)
	if got.Total != 0 || got.MonthlySubscriptionCost != 0 {
		t.Errorf("Build(nil) = %+v, want zero totals", got)
	}
	if got.ByCategory == nil || got.ByClass == nil {
		t.Error("Build(nil) maps must be non-nil so they serialize as {}")
	}
}
