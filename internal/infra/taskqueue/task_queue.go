package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue is the timer sink: it fires a one-shot HTTP callback carrying
// the trigger at its schedule time.
type TaskQueue interface {
	ScheduleTrigger(ctx context.Context, task *TriggerTask) (*TaskResponse, error)
	DeleteTask(ctx context.Context, taskID string) error
}
