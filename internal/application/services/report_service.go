package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/clock"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/fingerprint"
)

const defaultBatchSize = 100

// ReportService queues delivery and seen acknowledgements and flushes them to
// the backend in batches.
type ReportService struct {
	store              application.ReportStore
	reporter           application.Reporter
	hasher             fingerprint.Hasher
	clock              clock.Clock
	pushRegistrationID string
	batchSize          int
	logger             *slog.Logger
}

type ReportServiceConfig struct {
	PushRegistrationID string
	Hasher             fingerprint.Hasher
	Clock              clock.Clock
	BatchSize          int
}

// FlushResult counts what a Flush did with the reports it picked up.
type FlushResult struct {
	Sent     int
	Failed   int
	Deferred int
}

func NewReportService(
	store application.ReportStore,
	reporter application.Reporter,
	cfg ReportServiceConfig,
	logger *slog.Logger,
) *ReportService {
	if cfg.Hasher == nil {
		cfg.Hasher = fingerprint.SHA1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &ReportService{
		store:              store,
		reporter:           reporter,
		hasher:             cfg.Hasher,
		clock:              clock.OrDefault(cfg.Clock),
		pushRegistrationID: cfg.PushRegistrationID,
		batchSize:          cfg.BatchSize,
		logger:             logger,
	}
}

// ReportKey is the store key for a report about messageID.
func (s *ReportService) ReportKey(messageID string, kind domain.ReportKind) string {
	return fingerprint.Key(s.hasher, s.pushRegistrationID, messageID, string(kind))
}

// MessageReceived marks msg delivered and queues its delivery report. It
// reports whether a new report was queued.
func (s *ReportService) MessageReceived(ctx context.Context, msg *domain.Message) (bool, error) {
	now := s.clock.Now()
	if msg.ReceivedTimestamp == 0 {
		msg.ReceivedTimestamp = now
	}
	if msg.Status == "" || msg.Status == domain.StatusUnknown {
		msg.Status = domain.StatusDelivered
	}
	return s.enqueue(ctx, msg.ID, domain.ReportDelivery, now)
}

// MessageSeen queues a seen report for messageID, timestamped now.
func (s *ReportService) MessageSeen(ctx context.Context, messageID string) (bool, error) {
	return s.enqueue(ctx, messageID, domain.ReportSeen, s.clock.Now())
}

func (s *ReportService) enqueue(ctx context.Context, messageID string, kind domain.ReportKind, at int64) (bool, error) {
	report, err := domain.NewReport(s.ReportKey(messageID, kind), kind, messageID, at)
	if err != nil {
		return false, err
	}

	added, err := s.store.Enqueue(ctx, report)
	if err != nil {
		return false, application.NewInternalError(err)
	}
	if !added {
		s.logger.Debug("report already queued",
			"message_id", messageID,
			"kind", kind,
		)
	}
	return added, nil
}

// Flush sends every pending report, batch by batch. A batch the backend
// rejects outright is marked failed. Transient and configuration errors leave
// the batch pending and stop flushing that kind until the next call.
func (s *ReportService) Flush(ctx context.Context) (FlushResult, error) {
	var result FlushResult
	for _, kind := range []domain.ReportKind{domain.ReportDelivery, domain.ReportSeen} {
		if err := s.flushKind(ctx, kind, &result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *ReportService) flushKind(ctx context.Context, kind domain.ReportKind, result *FlushResult) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := s.store.Pending(ctx, kind, s.batchSize)
		if err != nil {
			return application.NewInternalError(err)
		}
		if len(batch) == 0 {
			return nil
		}

		keys := make([]string, len(batch))
		for i, r := range batch {
			keys[i] = r.Key
		}

		sendErr := s.send(ctx, kind, batch)
		if sendErr == nil {
			if err := s.store.MarkSent(ctx, keys); err != nil {
				return application.NewInternalError(err)
			}
			result.Sent += len(batch)
			s.logger.Info("reports sent", "kind", kind, "count", len(batch))
			continue
		}

		category := application.CategorizeError(sendErr)
		if category == application.CategoryTransient || category == application.CategoryConfiguration {
			if err := s.store.RecordAttempt(ctx, keys, sendErr.Error()); err != nil {
				return application.NewInternalError(err)
			}
			result.Deferred += len(batch)
			s.logger.Warn("report batch deferred",
				"kind", kind,
				"count", len(batch),
				"category", category,
				"error", sendErr,
			)
			return nil
		}

		if err := s.store.MarkFailed(ctx, keys, sendErr.Error()); err != nil {
			return application.NewInternalError(err)
		}
		result.Failed += len(batch)
		s.logger.Error("report batch rejected",
			"kind", kind,
			"count", len(batch),
			"category", category,
			"error", sendErr,
		)
	}
}

func (s *ReportService) send(ctx context.Context, kind domain.ReportKind, batch []*domain.Report) error {
	switch kind {
	case domain.ReportDelivery:
		ids := make([]string, len(batch))
		for i, r := range batch {
			ids[i] = r.MessageID
		}
		return s.reporter.ReportDelivered(ctx, ids)
	case domain.ReportSeen:
		seen := make([]application.SeenReport, len(batch))
		for i, r := range batch {
			seen[i] = application.SeenReport{
				MessageID:      r.MessageID,
				TimestampDelta: clock.DeltaSeconds(s.clock, r.OccurredAt),
			}
		}
		return s.reporter.ReportSeen(ctx, seen)
	default:
		return fmt.Errorf("unknown report kind %q", kind)
	}
}

// Status returns the stored report about messageID.
func (s *ReportService) Status(ctx context.Context, messageID string, kind domain.ReportKind) (*domain.Report, error) {
	return s.store.Get(ctx, s.ReportKey(messageID, kind))
}
