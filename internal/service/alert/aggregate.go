package alert

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

type aggregateKey struct {
	urgency string
	status  string
}

// aggregator folds per-item results into one record per urgency and status.
type aggregator struct {
	runID        string
	dispatchedAt time.Time
	counts       map[aggregateKey]*domain.AlertResultRecord
}

func newAggregator(runID string, dispatchedAt time.Time) *aggregator {
	return &aggregator{
		runID:        runID,
		dispatchedAt: dispatchedAt,
		counts:       make(map[aggregateKey]*domain.AlertResultRecord),
	}
}

func (a *aggregator) add(result ResultItem) {
	key := aggregateKey{urgency: result.Urgency, status: result.Status}
	rec, ok := a.counts[key]
	if !ok {
		rec = &domain.AlertResultRecord{
			RunID:        a.runID,
			DispatchedAt: a.dispatchedAt,
			Urgency:      result.Urgency,
			Status:       result.Status,
		}
		a.counts[key] = rec
	}

	switch {
	case result.Sent:
		rec.SentCount++
	case result.Skipped:
		rec.SkippedCount++
	default:
		rec.FailedCount++
	}
}

func (a *aggregator) records() []domain.AlertResultRecord {
	out := make([]domain.AlertResultRecord, 0, len(a.counts))
	for _, rec := range a.counts {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Urgency != out[j].Urgency {
			return out[i].Urgency < out[j].Urgency
		}
		return out[i].Status < out[j].Status
	})
	return out
}
