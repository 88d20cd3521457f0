package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/config"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/request"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

type HTTPTransport struct {
	httpClient *http.Client
	logger     *slog.Logger
}

var _ application.Transport = (*HTTPTransport)(nil)

func NewHTTPTransport(cfg config.APIConfig, logger *slog.Logger) *HTTPTransport {
	return NewHTTPTransportWithClient(&http.Client{
		Timeout: cfg.Timeout,
	}, logger)
}

func NewHTTPTransportWithClient(client *http.Client, logger *slog.Logger) *HTTPTransport {
	return &HTTPTransport{
		httpClient: client,
		logger:     logger,
	}
}

// Execute sends req as is. Non-2xx responses are returned, not turned into
// errors; only failures to complete the exchange are.
func (t *HTTPTransport) Execute(ctx context.Context, req *request.BoundRequest) (*application.Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = strings.NewReader(*req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	// Add keeps duplicates and declaration order.
	for _, h := range req.Headers {
		httpReq.Header.Add(h.Name, h.Value)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.Warn("request failed",
			"operation", req.Operation,
			"method", req.Method,
			"error", err,
		)
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	t.logger.Debug("request completed",
		"operation", req.Operation,
		"method", req.Method,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return &application.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
