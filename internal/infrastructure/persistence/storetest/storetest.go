// Package storetest holds the behaviour every application.ReportStore must
// share. Store packages run it from their own tests.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoreFactory returns an empty store. It is called once per subtest.
type StoreFactory func(t *testing.T) application.ReportStore

func RunReportStoreTests(t *testing.T, newStore StoreFactory) {
	t.Run("EnqueueDeduplicates", func(t *testing.T) { testEnqueueDeduplicates(t, newStore(t)) })
	t.Run("PendingOrderAndLimit", func(t *testing.T) { testPendingOrderAndLimit(t, newStore(t)) })
	t.Run("PendingFiltersKind", func(t *testing.T) { testPendingFiltersKind(t, newStore(t)) })
	t.Run("MarkSent", func(t *testing.T) { testMarkSent(t, newStore(t)) })
	t.Run("MarkFailed", func(t *testing.T) { testMarkFailed(t, newStore(t)) })
	t.Run("RecordAttempt", func(t *testing.T) { testRecordAttempt(t, newStore(t)) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newStore(t)) })
	t.Run("ConcurrentEnqueue", func(t *testing.T) { testConcurrentEnqueue(t, newStore(t)) })
}

func newReport(t *testing.T, key string, kind domain.ReportKind, occurredAt int64) *domain.Report {
	t.Helper()
	r, err := domain.NewReport(key, kind, "msg-"+key, occurredAt)
	require.NoError(t, err)
	return r
}

func keys(reports []*domain.Report) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.Key
	}
	return out
}

func testEnqueueDeduplicates(t *testing.T, s application.ReportStore) {
	ctx := context.Background()

	added, err := s.Enqueue(ctx, newReport(t, "k1", domain.ReportDelivery, 100))
	require.NoError(t, err)
	assert.True(t, added)

	dup := newReport(t, "k1", domain.ReportDelivery, 999)
	added, err = s.Enqueue(ctx, dup)
	require.NoError(t, err)
	assert.False(t, added)

	got, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.OccurredAt, "first write wins")
	assert.Equal(t, "msg-k1", got.MessageID)
	assert.Equal(t, domain.ReportPending, got.State)
}

func testPendingOrderAndLimit(t *testing.T, s application.ReportStore) {
	ctx := context.Background()
	for _, r := range []*domain.Report{
		newReport(t, "c", domain.ReportSeen, 300),
		newReport(t, "b", domain.ReportSeen, 100),
		newReport(t, "a", domain.ReportSeen, 100),
		newReport(t, "d", domain.ReportSeen, 200),
	} {
		_, err := s.Enqueue(ctx, r)
		require.NoError(t, err)
	}

	all, err := s.Pending(ctx, domain.ReportSeen, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "c"}, keys(all))

	firstTwo, err := s.Pending(ctx, domain.ReportSeen, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys(firstTwo))
}

func testPendingFiltersKind(t *testing.T, s application.ReportStore) {
	ctx := context.Background()
	_, err := s.Enqueue(ctx, newReport(t, "d1", domain.ReportDelivery, 1))
	require.NoError(t, err)
	_, err = s.Enqueue(ctx, newReport(t, "s1", domain.ReportSeen, 1))
	require.NoError(t, err)

	delivery, err := s.Pending(ctx, domain.ReportDelivery, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, keys(delivery))
	assert.Equal(t, domain.ReportDelivery, delivery[0].Kind)
}

func testMarkSent(t *testing.T, s application.ReportStore) {
	ctx := context.Background()
	for _, k := range []string{"x", "y"} {
		_, err := s.Enqueue(ctx, newReport(t, k, domain.ReportDelivery, 1))
		require.NoError(t, err)
	}

	require.NoError(t, s.MarkSent(ctx, []string{"x", "unknown"}))

	pending, err := s.Pending(ctx, domain.ReportDelivery, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, keys(pending))

	got, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportSent, got.State)

	_, err = s.Get(ctx, "unknown")
	assert.True(t, errors.Is(err, domain.ErrReportNotFound))
}

func testMarkFailed(t *testing.T, s application.ReportStore) {
	ctx := context.Background()
	_, err := s.Enqueue(ctx, newReport(t, "f", domain.ReportSeen, 1))
	require.NoError(t, err)

	require.NoError(t, s.MarkFailed(ctx, []string{"f"}, "rejected"))

	got, err := s.Get(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportFailed, got.State)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, "rejected", got.LastError)

	pending, err := s.Pending(ctx, domain.ReportSeen, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func testRecordAttempt(t *testing.T, s application.ReportStore) {
	ctx := context.Background()
	_, err := s.Enqueue(ctx, newReport(t, "p", domain.ReportDelivery, 1))
	require.NoError(t, err)
	_, err = s.Enqueue(ctx, newReport(t, "done", domain.ReportDelivery, 2))
	require.NoError(t, err)
	require.NoError(t, s.MarkSent(ctx, []string{"done"}))

	require.NoError(t, s.RecordAttempt(ctx, []string{"p", "done"}, "timeout"))
	require.NoError(t, s.RecordAttempt(ctx, []string{"p"}, "timeout again"))

	got, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportPending, got.State)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, "timeout again", got.LastError)

	done, err := s.Get(ctx, "done")
	require.NoError(t, err)
	assert.Equal(t, 0, done.Attempts)
}

func testGetMissing(t *testing.T, s application.ReportStore) {
	_, err := s.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrReportNotFound))
}

func testConcurrentEnqueue(t *testing.T, s application.ReportStore) {
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := s.Enqueue(ctx, newReport(t, fmt.Sprintf("same-%d", i%2), domain.ReportDelivery, int64(i)))
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, added)
}
