package adapter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

// executor runs the adapter's API calls one at a time. Sequences derived
// from one adapter may be pulled from several goroutines; their requests
// still never overlap.
type executor struct {
	sem    *semaphore.Weighted
	logger *slog.Logger
}

func newExecutor(logger *slog.Logger) *executor {
	return &executor{sem: semaphore.NewWeighted(1), logger: logger}
}

// do runs fn once the executor is free. A context canceled while waiting
// fails the call without running fn.
func (e *executor) do(ctx context.Context, op string, fn func(context.Context) error) error {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.sem.Release(1)

	start := time.Now()
	err := fn(ctx)
	if err != nil {
		e.logger.DebugContext(ctx, "request failed", "op", op, "duration", time.Since(start), "error", err)
		return err
	}
	e.logger.DebugContext(ctx, "request executed", "op", op, "duration", time.Since(start))
	return nil
}
