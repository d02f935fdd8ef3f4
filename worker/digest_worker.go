package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"ainews-digest/internal/digest"
)

// DigestWorker runs the digest pipeline on a cron schedule. In scheduled
// mode a failed publish is logged and the worker waits for the next tick;
// only an invalid schedule aborts startup.
type DigestWorker struct {
	Builder    *digest.Builder
	Schedule   string // cron expression, e.g. "@hourly" or "0 9 * * *"
	RunAtStart bool
}

func (w *DigestWorker) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(w.Schedule, func() {
		w.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", w.Schedule, err)
	}
	if w.RunAtStart {
		w.runOnce(ctx)
	}
	c.Start()
	slog.Info("digest worker: scheduled", "schedule", w.Schedule)
	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return nil
}

func (w *DigestWorker) runOnce(ctx context.Context) {
	if err := w.Builder.Run(ctx); err != nil {
		slog.Error("digest worker: run failed", "err", err)
		return
	}
}
