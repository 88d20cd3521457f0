package transport_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/config"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/transport"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestHTTPTransport_Execute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/mobile/1/messages/deliveryreport", r.URL.Path)
		assert.Equal(t, []string{"a", "b"}, r.Header.Values("X-Dup"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"dlrIds":["m1"]}`, string(body))

		w.Header().Set("X-Reply", "yes")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body := `{"dlrIds":["m1"]}`
	tr := transport.NewHTTPTransport(config.APIConfig{Timeout: time.Second}, discard)

	resp, err := tr.Execute(context.Background(), &request.BoundRequest{
		Operation: "reportDelivery",
		Method:    http.MethodPost,
		URL:       server.URL + "/mobile/1/messages/deliveryreport",
		Headers: []request.Header{
			{Name: "X-Dup", Value: "a"},
			{Name: "X-Dup", Value: "b"},
			{Name: "Content-Type", Value: "application/json"},
		},
		Body: &body,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, resp.Success())
	assert.Equal(t, "yes", resp.Header.Get("X-Reply"))
	assert.Equal(t, `{"ok":true}`, string(resp.Body))
}

func TestHTTPTransport_NonSuccessIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	tr := transport.NewHTTPTransportWithClient(server.Client(), discard)

	resp, err := tr.Execute(context.Background(), &request.BoundRequest{Method: http.MethodGet, URL: server.URL})
	require.NoError(t, err)
	assert.False(t, resp.Success())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTPTransport_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	tr := transport.NewHTTPTransportWithClient(server.Client(), discard)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tr.Execute(ctx, &request.BoundRequest{Method: http.MethodGet, URL: server.URL})

	require.Error(t, err)
	assert.Equal(t, application.CategoryTransient, application.CategorizeError(err))
}

func TestHTTPTransport_InvalidRequest(t *testing.T) {
	tr := transport.NewHTTPTransportWithClient(http.DefaultClient, discard)

	_, err := tr.Execute(context.Background(), &request.BoundRequest{Method: "BAD METHOD", URL: "http://x"})

	assert.Error(t, err)
}
