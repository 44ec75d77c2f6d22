package worker

import (
	"context"
	"log/slog"
	"time"

	"threadjuice/internal/ingest"
)

// ScheduledIngest starts an ingestion job on a fixed cadence with a preset
// config, the cron-driven counterpart of the HTTP start-job endpoint.
type ScheduledIngest struct {
	Service  *ingest.Service
	Config   ingest.JobConfig
	Interval time.Duration
}

func (w *ScheduledIngest) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = time.Hour
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ScheduledIngest) runOnce(ctx context.Context) {
	job, err := w.Service.StartIngestionJob(ctx, w.Config)
	if err != nil {
		slog.Error("scheduler: start ingestion job failed", "error", err)
		return
	}
	slog.Info("scheduler: started ingestion job", "job", job.ID, "subreddits", w.Config.Subreddits)
}
