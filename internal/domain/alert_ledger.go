package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=alert_ledger.go -destination=alert_ledger_mock.go -package=domain

// AlertLedger remembers which alerts were already sent.
type AlertLedger interface {
	// MarkSent records key and reports whether it was not recorded before.
	MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
