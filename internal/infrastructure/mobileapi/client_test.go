package mobileapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application/mocks"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/config"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/mobileapi"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/transport"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/request"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/serialization"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func apiConfig(baseURL string) config.APIConfig {
	return config.APIConfig{
		BaseURL:      baseURL,
		APIKey:       "app-code",
		PlatformType: "GCM",
		UserAgent:    "mmsdk-test/1.0",
		SDKVersion:   "1.0.0",
		Timeout:      5 * time.Second,
	}
}

func newClient(t *testing.T, baseURL string, tr application.Transport, opts ...mobileapi.Option) *mobileapi.Client {
	t.Helper()
	s := serialization.New(serialization.StdEngine{})
	c, err := mobileapi.NewClient(mobileapi.NewBuilder(apiConfig(baseURL), s), tr, s, discard, opts...)
	require.NoError(t, err)
	return c
}

func TestClient_SyncMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/mobile/5/messages", r.URL.Path)
		assert.Equal(t, "GCM", r.URL.Query().Get("platformType"))
		assert.Equal(t, "App app-code", r.Header.Get("Authorization"))
		assert.Equal(t, "reg-1", r.Header.Get("pushregistrationid"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"mIDs":["m0"]}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payloads":[
			{"messageId":"m1","body":"hello","internalData":"{\"silent\":{}}"},
			{"body":"missing id"}
		]}`))
	}))
	defer server.Close()

	tr := transport.NewHTTPTransport(apiConfig(server.URL), discard)
	c := newClient(t, server.URL, tr)

	msgs, err := c.SyncMessages(context.Background(), &mobileapi.SyncRequest{
		PushRegistrationID: "reg-1",
		MessageIDs:         []string{"m0"},
	})
	require.NoError(t, err)

	require.Len(t, msgs, 1)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "hello", msgs[0].Body)
	assert.True(t, msgs[0].Silent)
}

func TestClient_SyncMessagesRequiresRegistration(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	c := newClient(t, "https://mobile.example.com", tr)

	_, err := c.SyncMessages(context.Background(), &mobileapi.SyncRequest{})

	assert.True(t, errors.Is(err, domain.ErrMissingRequiredParameter))
	tr.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestClient_NilRequestsFailBeforeSending(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	c := newClient(t, "https://mobile.example.com", tr)
	ctx := context.Background()

	calls := map[string]func() error{
		"createInstance": func() error { _, err := c.CreateInstance(ctx, nil); return err },
		"syncMessages":   func() error { _, err := c.SyncMessages(ctx, nil); return err },
		"reportDelivery": func() error { return c.ReportDelivery(ctx, nil) },
		"reportSeen":     func() error { return c.ReportSeen(ctx, nil) },
		"sendMO":         func() error { _, err := c.SendMO(ctx, nil); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = call() })
			assert.True(t, errors.Is(err, domain.ErrMissingRequiredParameter), "got %v", err)
		})
	}
	tr.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"requestError":{"serviceException":{"messageId":"UNAUTHORIZED","text":"Invalid application code"}}}`))
	}))
	defer server.Close()

	c := newClient(t, server.URL, transport.NewHTTPTransport(apiConfig(server.URL), discard))

	_, err := c.FetchBaseURL(context.Background())

	apiErr, ok := mobileapi.IsAPIError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
	assert.Equal(t, "Invalid application code", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, application.CategoryConfiguration, application.CategorizeError(err))
}

func TestClient_APIErrorWithUnknownBody(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Execute(mock.Anything, mock.Anything).
		Return(&application.Response{StatusCode: http.StatusBadGateway, Body: []byte("upstream down")}, nil).
		Once()
	c := newClient(t, "https://mobile.example.com", tr)

	_, err := c.FetchVersion(context.Background())

	apiErr, ok := mobileapi.IsAPIError(err)
	require.True(t, ok)
	assert.Empty(t, apiErr.Code)
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.True(t, apiErr.IsRetryable())
}

func TestClient_SendMOAssignsMissingIDs(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	var sent *request.BoundRequest
	tr.EXPECT().Execute(mock.Anything, mock.Anything).
		Run(func(_ context.Context, req *request.BoundRequest) { sent = req }).
		Return(&application.Response{StatusCode: http.StatusOK, Body: []byte(`{"messages":[{"messageId":"x","status":"SUCCESS"}]}`)}, nil).
		Once()
	c := newClient(t, "https://mobile.example.com", tr)

	resp, err := c.SendMO(context.Background(), &mobileapi.MORequest{
		PushRegistrationID: "reg-1",
		From:               "reg-1",
		Messages: []mobileapi.MOMessage{
			{Text: "first"},
			{MessageID: "keep-me", Text: "second"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "SUCCESS", resp.Messages[0].Status)

	require.NotNil(t, sent)
	assert.Equal(t, "https://mobile.example.com/mobile/1/messages/mo?platformType=GCM", sent.URL)
	var body mobileapi.MORequest
	require.NoError(t, json.Unmarshal([]byte(*sent.Body), &body))
	_, err = uuid.Parse(body.Messages[0].MessageID)
	assert.NoError(t, err)
	assert.Equal(t, "keep-me", body.Messages[1].MessageID)
}

func TestClient_ReportClick(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	var sent *request.BoundRequest
	tr.EXPECT().Execute(mock.Anything, mock.Anything).
		Run(func(_ context.Context, req *request.BoundRequest) { sent = req }).
		Return(&application.Response{StatusCode: http.StatusOK, Body: []byte("OK")}, nil).
		Once()
	c := newClient(t, "https://mobile.example.com", tr, mobileapi.WithUserAgent("default-agent"))

	err := c.ReportClick(context.Background(), mobileapi.ClickReport{
		URL:                "https://track.example.com/c/abc?x=1",
		PushRegistrationID: "reg-1",
		ButtonIndex:        "2",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, sent.Method)
	assert.Equal(t, "https://track.example.com/c/abc?x=1", sent.URL)
	assert.Equal(t, []request.Header{
		{Name: "Authorization", Value: "App app-code"},
		{Name: "pushRegistrationId", Value: "reg-1"},
		{Name: "buttonidx", Value: "2"},
		{Name: "User-Agent", Value: "default-agent"},
	}, sent.Headers)
	assert.Nil(t, sent.Body)
}

func TestClient_ReportSeenBody(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	var sent *request.BoundRequest
	tr.EXPECT().Execute(mock.Anything, mock.Anything).
		Run(func(_ context.Context, req *request.BoundRequest) { sent = req }).
		Return(&application.Response{StatusCode: http.StatusNoContent}, nil).
		Once()
	c := newClient(t, "https://mobile.example.com", tr)

	err := c.ReportSeen(context.Background(), &mobileapi.SeenReportRequest{
		Messages: []mobileapi.SeenMessage{{MessageID: "m1", TimestampDelta: 12}},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://mobile.example.com/mobile/2/messages/seen", sent.URL)
	assert.JSONEq(t, `{"messages":[{"messageId":"m1","timestampDelta":12}]}`, *sent.Body)
	_, hasRegistration := sent.Header("pushregistrationid")
	assert.False(t, hasRegistration)
}

func TestClient_CreateInstanceNullableFields(t *testing.T) {
	enabled := true
	instance := &mobileapi.Instance{NotificationsEnabled: &enabled, OS: "Android"}

	tests := []struct {
		name          string
		preserveNulls bool
		want          string
	}{
		{name: "nulls dropped", want: `{"notificationsEnabled":true,"os":"Android"}`},
		{name: "nulls preserved", preserveNulls: true, want: `{"regEnabled":null,"notificationsEnabled":true,"os":"Android"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := mocks.NewMockTransport(t)
			var sent *request.BoundRequest
			tr.EXPECT().Execute(mock.Anything, mock.Anything).
				Run(func(_ context.Context, req *request.BoundRequest) { sent = req }).
				Return(&application.Response{StatusCode: http.StatusOK, Body: []byte(`{"pushRegistrationId":"reg-1"}`)}, nil).
				Once()

			s := serialization.New(serialization.StdEngine{}, serialization.WithPreserveNulls(tt.preserveNulls))
			c, err := mobileapi.NewClient(mobileapi.NewBuilder(apiConfig("https://mobile.example.com"), s), tr, s, discard)
			require.NoError(t, err)

			got, err := c.CreateInstance(context.Background(), instance)
			require.NoError(t, err)
			assert.Equal(t, "reg-1", got.PushRegistrationID)
			require.NotNil(t, sent.Body)
			assert.JSONEq(t, tt.want, *sent.Body)
		})
	}
}

func TestClient_MetricsCountOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := mobileapi.NewMetrics(reg)
	require.NoError(t, err)

	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Execute(mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded).
		Once()
	tr.EXPECT().Execute(mock.Anything, mock.Anything).
		Return(&application.Response{StatusCode: http.StatusOK, Body: []byte(`{"baseUrl":"https://other.example.com"}`)}, nil).
		Once()
	c := newClient(t, "https://mobile.example.com", tr, mobileapi.WithMetrics(metrics))

	_, err = c.FetchBaseURL(context.Background())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	resp, err := c.FetchBaseURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com", resp.BaseURL)

	series, err := testutil.GatherAndCount(reg, "mmsdk_mobile_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series, "one series per outcome")
}

func TestNewClient_FailsOnBadConfiguration(t *testing.T) {
	s := serialization.New(nil)
	cfg := apiConfig("not a url")

	_, err := mobileapi.NewClient(mobileapi.NewBuilder(cfg, s), mocks.NewMockTransport(t), s, discard)

	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestOperations_AllResolve(t *testing.T) {
	s := serialization.New(nil)
	builder := mobileapi.NewBuilder(apiConfig("https://mobile.example.com"), s)

	for _, def := range mobileapi.Operations() {
		_, err := builder.Resolver().Resolve(def)
		assert.NoError(t, err, def.Name)
	}
}
