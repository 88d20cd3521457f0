// Package redis stores reports in Redis so several processes can share one
// queue.
//
// Each report is a hash under <prefix>:report:<key>. Pending reports are also
// members of the sorted set <prefix>:pending:<kind>, scored by occurrence
// time; equal scores order by key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/config"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	fieldKey        = "key"
	fieldKind       = "kind"
	fieldMessageID  = "message_id"
	fieldOccurredAt = "occurred_at"
	fieldState      = "state"
	fieldAttempts   = "attempts"
	fieldLastError  = "last_error"
)

type Config struct {
	Client *redis.Client
	// KeyPrefix defaults to "mmsdk".
	KeyPrefix string
}

type ReportStore struct {
	client    *redis.Client
	keyPrefix string
}

var _ application.ReportStore = (*ReportStore)(nil)

func New(cfg Config) (*ReportStore, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "mmsdk"
	}
	return &ReportStore{
		client:    cfg.Client,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// NewClient creates a client from configuration and checks connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func (s *ReportStore) reportKey(key string) string {
	return s.keyPrefix + ":report:" + key
}

func (s *ReportStore) pendingKey(kind domain.ReportKind) string {
	return s.keyPrefix + ":pending:" + string(kind)
}

// enqueueScript claims and writes a report in one step. A hash without a
// state field is a leftover from an interrupted write and is overwritten.
//
// KEYS[1] report hash, KEYS[2] pending set.
// ARGV[1] score, ARGV[2] member, ARGV[3] "1" when pending, ARGV[4:] field/value pairs.
var enqueueScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], '` + fieldState + `') == 1 then
	return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], unpack(ARGV, 4))
if ARGV[3] == '1' then
	redis.call('ZADD', KEYS[2], ARGV[1], ARGV[2])
end
return 1
`)

func (s *ReportStore) Enqueue(ctx context.Context, report *domain.Report) (bool, error) {
	pending := "0"
	if report.State == domain.ReportPending {
		pending = "1"
	}
	args := []any{report.OccurredAt, report.Key, pending}
	for field, value := range toFields(report) {
		args = append(args, field, value)
	}

	created, err := enqueueScript.Run(ctx, s.client,
		[]string{s.reportKey(report.Key), s.pendingKey(report.Kind)},
		args...,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to enqueue report %s: %w", report.Key, err)
	}
	return created == 1, nil
}

func (s *ReportStore) Pending(ctx context.Context, kind domain.ReportKind, limit int) ([]*domain.Report, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	keys, err := s.client.ZRange(ctx, s.pendingKey(kind), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reports: %w", err)
	}

	reports, err := s.load(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Report, 0, len(reports))
	for _, r := range reports {
		if r != nil && r.State == domain.ReportPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *ReportStore) MarkSent(ctx context.Context, keys []string) error {
	return s.update(ctx, keys, func(r *domain.Report) {
		r.State = domain.ReportSent
		r.LastError = ""
	})
}

func (s *ReportStore) MarkFailed(ctx context.Context, keys []string, reason string) error {
	return s.update(ctx, keys, func(r *domain.Report) {
		r.State = domain.ReportFailed
		r.Attempts++
		r.LastError = reason
	})
}

func (s *ReportStore) RecordAttempt(ctx context.Context, keys []string, reason string) error {
	return s.update(ctx, keys, func(r *domain.Report) {
		if r.State != domain.ReportPending {
			return
		}
		r.Attempts++
		r.LastError = reason
	})
}

func (s *ReportStore) Get(ctx context.Context, key string) (*domain.Report, error) {
	fields, err := s.client.HGetAll(ctx, s.reportKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", key, err)
	}
	report, err := fromFields(fields)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

// load fetches reports in key order. Missing reports are nil.
func (s *ReportStore) load(ctx context.Context, keys []string) ([]*domain.Report, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, k := range keys {
			cmds[i] = pipe.HGetAll(ctx, s.reportKey(k))
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	reports := make([]*domain.Report, len(keys))
	for i, cmd := range cmds {
		r, err := fromFields(cmd.Val())
		if err != nil {
			return nil, err
		}
		reports[i] = r
	}
	return reports, nil
}

func (s *ReportStore) update(ctx context.Context, keys []string, fn func(*domain.Report)) error {
	reports, err := s.load(ctx, keys)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, r := range reports {
			if r == nil {
				continue
			}
			fn(r)
			pipe.HSet(ctx, s.reportKey(r.Key), toFields(r))
			if r.State != domain.ReportPending {
				pipe.ZRem(ctx, s.pendingKey(r.Kind), r.Key)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update reports: %w", err)
	}
	return nil
}

func toFields(r *domain.Report) map[string]any {
	return map[string]any{
		fieldKey:        r.Key,
		fieldKind:       string(r.Kind),
		fieldMessageID:  r.MessageID,
		fieldOccurredAt: r.OccurredAt,
		fieldState:      string(r.State),
		fieldAttempts:   r.Attempts,
		fieldLastError:  r.LastError,
	}
}

// fromFields returns nil for an empty hash, which is how Redis reports a
// missing key, and for a hash without a state, which was never fully written.
func fromFields(f map[string]string) (*domain.Report, error) {
	if _, ok := f[fieldState]; !ok {
		return nil, nil
	}

	occurredAt, err := strconv.ParseInt(f[fieldOccurredAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("report %s: bad %s: %w", f[fieldKey], fieldOccurredAt, err)
	}
	attempts, err := strconv.Atoi(f[fieldAttempts])
	if err != nil {
		return nil, fmt.Errorf("report %s: bad %s: %w", f[fieldKey], fieldAttempts, err)
	}

	return &domain.Report{
		Key:        f[fieldKey],
		Kind:       domain.ReportKind(f[fieldKind]),
		MessageID:  f[fieldMessageID],
		OccurredAt: occurredAt,
		State:      domain.ReportState(f[fieldState]),
		Attempts:   attempts,
		LastError:  f[fieldLastError],
	}, nil
}
