package domain

import (
	"fmt"
	"strings"
	"time"
)

const DefaultCategory = "Other"

// ItemClass distinguishes documents from subscriptions.
type ItemClass string

const (
	ItemClassDocument     ItemClass = "document"
	ItemClassSubscription ItemClass = "subscription"
)

func ParseItemClass(s string) (ItemClass, error) {
	switch ItemClass(strings.ToLower(strings.TrimSpace(s))) {
	case ItemClassDocument:
		return ItemClassDocument, nil
	case ItemClassSubscription:
		return ItemClassSubscription, nil
	default:
		return "", fmt.Errorf("%w: unknown item class %q", ErrInvalidItem, s)
	}
}

func (c ItemClass) String() string {
	return string(c)
}

func (c ItemClass) IsValid() bool {
	return c == ItemClassDocument || c == ItemClassSubscription
}

func (c ItemClass) IsSubscription() bool {
	return c == ItemClassSubscription
}

// BillingCycle is the recurrence period of a subscription charge.
type BillingCycle string

const (
	BillingCycleWeekly    BillingCycle = "weekly"
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

func (b BillingCycle) String() string {
	return string(b)
}

func (b BillingCycle) IsKnown() bool {
	switch b {
	case BillingCycleWeekly, BillingCycleMonthly, BillingCycleQuarterly, BillingCycleYearly:
		return true
	}
	return false
}

type Item struct {
	ID             string
	UserID         string
	Name           string
	Category       *string
	Class          ItemClass
	TemplateKey    string
	Fields         map[string]string
	Notes          string
	ExpirationDate *time.Time
	RenewalDate    *time.Time
	Price          *float64
	Currency       string
	BillingCycle   *BillingCycle
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RelevantDate prefers the expiration date over the renewal date.
func (i *Item) RelevantDate() *time.Time {
	if i.ExpirationDate != nil {
		return i.ExpirationDate
	}
	return i.RenewalDate
}

// CategoryLabel returns the category, or DefaultCategory when it is unset or blank.
func (i *Item) CategoryLabel() string {
	if i.Category == nil || strings.TrimSpace(*i.Category) == "" {
		return DefaultCategory
	}
	return *i.Category
}

// ItemFilter narrows a listing. Empty fields match everything.
type ItemFilter struct {
	Class    ItemClass
	Category string
	Status   Status
}
