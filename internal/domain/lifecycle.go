package domain

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusExpiring || s == StatusExpired
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) String() string {
	return string(u)
}

// Classification is derived from an item's dates at a given instant and never stored.
type Classification struct {
	Status       Status     `json:"status"`
	DaysLeft     *int       `json:"daysLeft"`
	Urgency      Urgency    `json:"urgency"`
	RelevantDate *time.Time `json:"-"`
}

type Stats struct {
	Total                   int            `json:"total"`
	ByCategory              map[string]int `json:"byCategory"`
	ByClass                 map[string]int `json:"byClass"`
	ExpiringSoon            int            `json:"expiringSoon"`
	Expired                 int            `json:"expired"`
	ActiveSubscriptions     int            `json:"activeSubscriptions"`
	MonthlySubscriptionCost float64        `json:"monthlySubscriptionCost"`
	InvalidDates            int            `json:"invalidDates,omitempty"`
}

type NotificationItem struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ExpirationDate *time.Time `json:"expirationDate"`
	RenewalDate    *time.Time `json:"renewalDate"`
	Urgency        Urgency    `json:"urgency"`
}
