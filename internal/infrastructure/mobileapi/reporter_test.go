package mobileapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/mobileapi"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter(t *testing.T) {
	var paths, bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "reg-9", r.Header.Get("pushregistrationid"))
		body, _ := io.ReadAll(r.Body)
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, string(body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newClient(t, server.URL, transport.NewHTTPTransport(apiConfig(server.URL), discard))
	r := mobileapi.NewReporter(c, "reg-9")

	require.NoError(t, r.ReportDelivered(context.Background(), []string{"m1", "m2"}))
	require.NoError(t, r.ReportSeen(context.Background(), []application.SeenReport{
		{MessageID: "m1", TimestampDelta: 7},
	}))

	require.Len(t, paths, 2)
	assert.Equal(t, "/mobile/1/messages/deliveryreport", paths[0])
	assert.JSONEq(t, `{"dlrIds":["m1","m2"]}`, bodies[0])
	assert.Equal(t, "/mobile/2/messages/seen", paths[1])
	assert.JSONEq(t, `{"messages":[{"messageId":"m1","timestampDelta":7}]}`, bodies[1])
}
