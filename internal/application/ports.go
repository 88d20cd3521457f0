package application

import (
	"context"
	"net/http"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/request"
)

// Response is what a Transport hands back for an executed request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Success reports whether the status code is in the 2xx range.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport is the port for executing bound requests against the backend.
// Implementations own connection handling, TLS and timeouts.
type Transport interface {
	Execute(ctx context.Context, req *request.BoundRequest) (*Response, error)
}

// ReportStore is the port for persisting delivery and seen reports until they
// are sent.
type ReportStore interface {
	// Enqueue stores report unless one with the same key exists. It reports
	// whether the report was added.
	Enqueue(ctx context.Context, report *domain.Report) (bool, error)
	// Pending returns up to limit pending reports of kind, oldest first.
	Pending(ctx context.Context, kind domain.ReportKind, limit int) ([]*domain.Report, error)
	MarkSent(ctx context.Context, keys []string) error
	MarkFailed(ctx context.Context, keys []string, reason string) error
	// RecordAttempt increments the attempt counter of reports that stay pending.
	RecordAttempt(ctx context.Context, keys []string, reason string) error
	Get(ctx context.Context, key string) (*domain.Report, error)
}

// SeenReport pairs a message with how long ago, in seconds, it was seen.
type SeenReport struct {
	MessageID      string
	TimestampDelta int64
}

// Reporter is the port for sending acknowledgements to the backend.
type Reporter interface {
	ReportDelivered(ctx context.Context, messageIDs []string) error
	ReportSeen(ctx context.Context, seen []SeenReport) error
}
