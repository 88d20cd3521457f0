package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
)

type ReportRepository struct {
	db persistence.Executor
}

var _ application.ReportStore = (*ReportRepository)(nil)

func NewReportRepository(db persistence.Executor) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `key, kind, message_id, occurred_at, state, attempts, last_error`

func (r *ReportRepository) Enqueue(ctx context.Context, report *domain.Report) (bool, error) {
	query := `
		INSERT INTO reports (key, kind, message_id, occurred_at, state, attempts, last_error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query,
		report.Key,
		string(report.Kind),
		report.MessageID,
		report.OccurredAt,
		string(report.State),
		report.Attempts,
		report.LastError,
	)
	if err != nil {
		return false, fmt.Errorf("failed to enqueue report: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Pending returns the oldest pending reports of kind.
func (r *ReportRepository) Pending(ctx context.Context, kind domain.ReportKind, limit int) ([]*domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE state = 'PENDING' AND kind = $1
		ORDER BY occurred_at, key
		LIMIT NULLIF($2::int, 0)
	`

	rows, err := r.db.Query(ctx, query, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

func (r *ReportRepository) MarkSent(ctx context.Context, keys []string) error {
	query := `
		UPDATE reports
		SET state = 'SENT', last_error = '', updated_at = NOW()
		WHERE key = ANY($1)
	`

	if _, err := r.db.Exec(ctx, query, keys); err != nil {
		return fmt.Errorf("failed to mark reports sent: %w", err)
	}
	return nil
}

func (r *ReportRepository) MarkFailed(ctx context.Context, keys []string, reason string) error {
	query := `
		UPDATE reports
		SET state = 'FAILED', attempts = attempts + 1, last_error = $2, updated_at = NOW()
		WHERE key = ANY($1)
	`

	if _, err := r.db.Exec(ctx, query, keys, reason); err != nil {
		return fmt.Errorf("failed to mark reports failed: %w", err)
	}
	return nil
}

func (r *ReportRepository) RecordAttempt(ctx context.Context, keys []string, reason string) error {
	query := `
		UPDATE reports
		SET attempts = attempts + 1, last_error = $2, updated_at = NOW()
		WHERE key = ANY($1) AND state = 'PENDING'
	`

	if _, err := r.db.Exec(ctx, query, keys, reason); err != nil {
		return fmt.Errorf("failed to record report attempt: %w", err)
	}
	return nil
}

func (r *ReportRepository) Get(ctx context.Context, key string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE key = $1`

	return scanReport(r.db.QueryRow(ctx, query, key))
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		report domain.Report
		kind   string
		state  string
	)

	err := row.Scan(
		&report.Key,
		&kind,
		&report.MessageID,
		&report.OccurredAt,
		&state,
		&report.Attempts,
		&report.LastError,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	report.Kind = domain.ReportKind(kind)
	report.State = domain.ReportState(state)
	return &report, nil
}
