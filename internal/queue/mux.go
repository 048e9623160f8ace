package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// NewServeMux routes phonemization tasks to h and logs every task run.
func NewServeMux(h asynq.Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(logTasks)
	mux.Handle(TypePhonemize, h)
	return mux
}

func logTasks(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		id, _ := asynq.GetTaskID(ctx)
		start := time.Now()

		err := next.ProcessTask(ctx, t)

		attrs := []any{"type", t.Type(), "task_id", id, "duration", time.Since(start)}
		if err != nil {
			slog.Warn("task failed", append(attrs, "error", err)...)
			return err
		}
		slog.Info("task done", attrs...)
		return nil
	})
}
