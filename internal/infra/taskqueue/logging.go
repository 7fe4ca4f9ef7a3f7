package taskqueue

import (
	"context"
	"log/slog"
	"time"
)

// LoggingQueue accepts every alert and only logs it. Used when no task queue is configured.
type LoggingQueue struct {
	now func() time.Time
}

func NewLoggingQueue() *LoggingQueue {
	return &LoggingQueue{now: time.Now}
}

func (q *LoggingQueue) RegisterAlert(ctx context.Context, task *AlertTask) (*TaskResponse, error) {
	slog.InfoContext(ctx, "alert not delivered, task queue disabled",
		slog.String("task_id", task.TaskID),
		slog.String("item_id", task.ItemID),
		slog.String("urgency", task.Urgency),
		slog.Int("threshold", task.Threshold),
	)

	now := q.now()
	scheduleAt := task.ScheduleAt
	if scheduleAt.IsZero() {
		scheduleAt = now
	}

	return &TaskResponse{
		Name:         task.TaskID,
		ScheduleTime: scheduleAt,
		CreateTime:   now,
	}, nil
}
