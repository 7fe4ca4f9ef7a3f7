package alertrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.AlertResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordDispatchResults(_ context.Context, _ []domain.AlertResultRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
