package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=alert_result_recorder.go -destination=alert_result_recorder_mock.go -package=domain

type AlertResultRecord struct {
	RunID        string
	DispatchedAt time.Time
	Urgency      string
	Status       string
	SentCount    int
	SkippedCount int
	FailedCount  int
}

type AlertResultRecorder interface {
	RecordDispatchResults(ctx context.Context, records []AlertResultRecord) error
	Flush(ctx context.Context) error
	Close() error
}
