// Package memory is a process-local report store, used when no database is
// configured and in tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
)

type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report
}

var _ application.ReportStore = (*ReportStore)(nil)

func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]*domain.Report)}
}

func (s *ReportStore) Enqueue(_ context.Context, report *domain.Report) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[report.Key]; ok {
		return false, nil
	}
	r := *report
	s.reports[report.Key] = &r
	return true, nil
}

func (s *ReportStore) Pending(_ context.Context, kind domain.ReportKind, limit int) ([]*domain.Report, error) {
	s.mu.RLock()
	var pending []*domain.Report
	for _, r := range s.reports {
		if r.Kind == kind && r.State == domain.ReportPending {
			c := *r
			pending = append(pending, &c)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(pending, func(a, b *domain.Report) int {
		return cmp.Or(
			cmp.Compare(a.OccurredAt, b.OccurredAt),
			cmp.Compare(a.Key, b.Key),
		)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *ReportStore) MarkSent(_ context.Context, keys []string) error {
	s.update(keys, func(r *domain.Report) {
		r.State = domain.ReportSent
		r.LastError = ""
	})
	return nil
}

func (s *ReportStore) MarkFailed(_ context.Context, keys []string, reason string) error {
	s.update(keys, func(r *domain.Report) {
		r.State = domain.ReportFailed
		r.Attempts++
		r.LastError = reason
	})
	return nil
}

func (s *ReportStore) RecordAttempt(_ context.Context, keys []string, reason string) error {
	s.update(keys, func(r *domain.Report) {
		if r.State != domain.ReportPending {
			return
		}
		r.Attempts++
		r.LastError = reason
	})
	return nil
}

func (s *ReportStore) Get(_ context.Context, key string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[key]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	c := *r
	return &c, nil
}

func (s *ReportStore) update(keys []string, fn func(*domain.Report)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		if r, ok := s.reports[k]; ok {
			fn(r)
		}
	}
}
