package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

type TaskQueue interface {
	RegisterAlert(ctx context.Context, task *AlertTask) (*TaskResponse, error)
}
