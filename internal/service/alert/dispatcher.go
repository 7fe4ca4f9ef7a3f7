package alert

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-vault/internal/observability/metrics"
	"github.com/KasumiMercury/primind-vault/internal/observability/tracing"
	"github.com/KasumiMercury/primind-vault/internal/service/lifecycle"
)

// Lookback is how far past its relevant date an item is still loaded, so an
// item that just lapsed gets its day-zero alert.
const Lookback = 24 * time.Hour

type Options struct {
	// Thresholds are the remaining day counts that trigger an alert.
	Thresholds []int
	Horizon    time.Duration
	LedgerTTL  time.Duration
}

type Dispatcher struct {
	repo         domain.ItemRepository
	ledger       domain.AlertLedger
	taskQueue    taskqueue.TaskQueue
	recorder     domain.AlertResultRecorder
	classifier   *lifecycle.Classifier
	opts         Options
	vaultMetrics *metrics.VaultMetrics
}

func NewDispatcher(
	repo domain.ItemRepository,
	ledger domain.AlertLedger,
	taskQueue taskqueue.TaskQueue,
	recorder domain.AlertResultRecorder,
	classifier *lifecycle.Classifier,
	opts Options,
	vaultMetrics *metrics.VaultMetrics,
) *Dispatcher {
	return &Dispatcher{
		repo:         repo,
		ledger:       ledger,
		taskQueue:    taskQueue,
		recorder:     recorder,
		classifier:   classifier,
		opts:         opts,
		vaultMetrics: vaultMetrics,
	}
}

// Dispatch registers one alert per item and threshold reached at now. Alerts already
// recorded in the ledger are skipped, so repeated runs within a day are harmless.
func (d *Dispatcher) Dispatch(ctx context.Context, now time.Time, runID string) (*Response, error) {
	if runID == "" {
		runID = uuid.NewString()
	}

	windowStart := now.Add(-Lookback)
	windowEnd := now.Add(d.opts.Horizon)

	ctx, span := tracing.StartDispatchSpan(ctx, windowStart, windowEnd)
	defer span.End()

	started := time.Now()

	items, err := d.repo.ListDue(ctx, windowStart, windowEnd)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load due items",
			slog.String("error", err.Error()),
		)
		err = fmt.Errorf("failed to load due items: %w", err)
		tracing.RecordDispatchResult(span, 0, 0, 0, err)
		return nil, err
	}

	slog.DebugContext(ctx, "loaded due items",
		slog.String("run_id", runID),
		slog.Int("item_count", len(items)),
	)

	resp := &Response{
		RunID:          runID,
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
		EvaluatedCount: len(items),
		Results:        make([]ResultItem, 0),
	}
	agg := newAggregator(runID, now)

	for _, item := range items {
		classification, err := d.classifier.Classify(item, now)
		if err != nil {
			slog.WarnContext(ctx, "skipping item with invalid date",
				slog.String("item_id", item.ID),
				slog.String("error", err.Error()),
			)
			resp.InvalidDates++
			continue
		}

		threshold, ok := d.matchThreshold(classification, now)
		if !ok {
			continue
		}

		result := d.dispatchOne(ctx, item, classification, threshold, now)
		resp.Results = append(resp.Results, result)
		agg.add(result)

		switch {
		case result.Sent:
			resp.SentCount++
		case result.Skipped:
			resp.SkippedCount++
		default:
			resp.FailedCount++
		}
	}

	if d.vaultMetrics != nil {
		d.vaultMetrics.RecordInvalidDates(ctx, "alert", resp.InvalidDates)
		d.vaultMetrics.RecordDispatchDuration(ctx, time.Since(started))
	}

	d.recordResults(ctx, agg.records())

	slog.InfoContext(ctx, "alert dispatch finished",
		slog.String("run_id", runID),
		slog.Int("evaluated_count", resp.EvaluatedCount),
		slog.Int("sent_count", resp.SentCount),
		slog.Int("skipped_count", resp.SkippedCount),
		slog.Int("failed_count", resp.FailedCount),
	)

	tracing.RecordDispatchResult(span, resp.SentCount, resp.SkippedCount, resp.FailedCount, nil)

	return resp, nil
}

// matchThreshold reports the threshold the classification reaches. An item whose
// relevant date passed within Lookback counts as reaching day zero.
func (d *Dispatcher) matchThreshold(c domain.Classification, now time.Time) (int, bool) {
	if c.DaysLeft == nil || c.RelevantDate == nil {
		return 0, false
	}

	if slices.Contains(d.opts.Thresholds, *c.DaysLeft) {
		return *c.DaysLeft, true
	}

	relevant := *c.RelevantDate
	if relevant.Before(now) && !relevant.Before(now.Add(-Lookback)) {
		return 0, true
	}

	return 0, false
}

func (d *Dispatcher) dispatchOne(ctx context.Context, item domain.Item, c domain.Classification, threshold int, now time.Time) ResultItem {
	ctx, span := tracing.StartAlertSpan(ctx, item.ID, threshold)
	defer span.End()

	relevant := c.RelevantDate.UTC()
	key := LedgerKey(item.ID, relevant, threshold)

	result := ResultItem{
		ItemID:       item.ID,
		UserID:       item.UserID,
		TaskID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String(),
		Threshold:    threshold,
		DaysLeft:     *c.DaysLeft,
		Status:       c.Status.String(),
		Urgency:      c.Urgency.String(),
		RelevantDate: relevant,
	}

	marked, err := d.ledger.MarkSent(ctx, key, d.opts.LedgerTTL)
	if err != nil {
		slog.WarnContext(ctx, "failed to mark alert in ledger",
			slog.String("item_id", item.ID),
			slog.String("error", err.Error()),
		)
		// Continue - the named task still deduplicates on the queue side
		marked = true
	}
	if !marked {
		result.Skipped = true
		result.SkipReason = "already sent"
		d.recordAlert(ctx, result.Urgency, metrics.OutcomeSkipped)
		tracing.RecordResult(span, nil)
		return result
	}

	_, err = d.taskQueue.RegisterAlert(ctx, &taskqueue.AlertTask{
		ScheduleAt:   now,
		TaskID:       result.TaskID,
		UserID:       item.UserID,
		ItemID:       item.ID,
		ItemName:     item.Name,
		Status:       result.Status,
		Urgency:      result.Urgency,
		DaysLeft:     result.DaysLeft,
		Threshold:    threshold,
		RelevantDate: relevant,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to register alert",
			slog.String("item_id", item.ID),
			slog.Int("threshold", threshold),
			slog.String("error", err.Error()),
		)
		if releaseErr := d.ledger.Release(ctx, key); releaseErr != nil {
			slog.WarnContext(ctx, "failed to release ledger mark",
				slog.String("item_id", item.ID),
				slog.String("error", releaseErr.Error()),
			)
		}
		result.Error = err.Error()
		d.recordAlert(ctx, result.Urgency, metrics.OutcomeFailure)
		tracing.RecordError(span, err)
		return result
	}

	result.Sent = true
	d.recordAlert(ctx, result.Urgency, metrics.OutcomeSuccess)
	tracing.RecordResult(span, nil)

	return result
}

func (d *Dispatcher) recordAlert(ctx context.Context, urgency, outcome string) {
	if d.vaultMetrics != nil {
		d.vaultMetrics.RecordAlert(ctx, urgency, outcome)
	}
}

func (d *Dispatcher) recordResults(ctx context.Context, records []domain.AlertResultRecord) {
	if d.recorder == nil || len(records) == 0 {
		return
	}

	if err := d.recorder.RecordDispatchResults(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record dispatch results",
			slog.String("error", err.Error()),
		)
		return
	}
	if err := d.recorder.Flush(ctx); err != nil {
		slog.WarnContext(ctx, "failed to flush dispatch results",
			slog.String("error", err.Error()),
		)
	}
}

// LedgerKey identifies one alert: an item, the date it is due and the threshold reached.
func LedgerKey(itemID string, relevant time.Time, threshold int) string {
	return fmt.Sprintf("%s:%s:%d", itemID, relevant.UTC().Format(time.RFC3339), threshold)
}
