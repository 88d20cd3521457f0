package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application/services"
)

// Flusher sends queued reports.
type Flusher interface {
	Flush(ctx context.Context) (services.FlushResult, error)
}

type ReportWorker struct {
	flusher  Flusher
	interval time.Duration
	logger   *slog.Logger
}

func NewReportWorker(
	flusher Flusher,
	interval time.Duration,
	logger *slog.Logger,
) *ReportWorker {
	return &ReportWorker{
		flusher:  flusher,
		interval: interval,
		logger:   logger,
	}
}

// Start flushes once immediately and then on every tick until ctx is done.
func (w *ReportWorker) Start(ctx context.Context) {
	w.logger.Info("report worker started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.flush(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("report worker stopping")
			return
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *ReportWorker) flush(ctx context.Context) {
	result, err := w.flusher.Flush(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("report flush failed", "error", err)
		}
		return
	}

	if result.Sent+result.Failed+result.Deferred == 0 {
		return
	}

	w.logger.Info("processed report flush",
		"sent", result.Sent,
		"failed", result.Failed,
		"deferred", result.Deferred,
	)
}
