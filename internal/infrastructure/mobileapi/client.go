package mobileapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/config"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/mapper"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/request"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/serialization"
	"github.com/google/uuid"
)

// Client executes mobile API operations through a Transport.
type Client struct {
	builder    *request.Builder
	transport  application.Transport
	serializer *serialization.Serializer
	mapper     *mapper.MessageMapper
	metrics    *Metrics
	userAgent  string
	logger     *slog.Logger
}

type Option func(*Client)

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithMapper(m *mapper.MessageMapper) Option {
	return func(c *Client) { c.mapper = m }
}

// WithUserAgent sets the User-Agent used for click reports that carry none.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewBuilder creates a request builder for the configured backend.
func NewBuilder(cfg config.APIConfig, serializer *serialization.Serializer) *request.Builder {
	resolver := request.NewResolver(request.ResolverConfig{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Properties: cfg.Properties(),
	})
	return request.NewBuilder(resolver, request.NewBinder(serializer))
}

// NewClient resolves every operation up front, so a misconfigured template
// fails here rather than on first use.
func NewClient(
	builder *request.Builder,
	transport application.Transport,
	serializer *serialization.Serializer,
	logger *slog.Logger,
	opts ...Option,
) (*Client, error) {
	if err := builder.Resolver().ResolveAll(Operations()...); err != nil {
		return nil, err
	}

	c := &Client{
		builder:    builder,
		transport:  transport,
		serializer: serializer,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.mapper == nil {
		c.mapper = mapper.NewMessageMapper(serializer, logger)
	}
	return c, nil
}

func (c *Client) FetchBaseURL(ctx context.Context) (*BaseURLResponse, error) {
	return sendRequest[struct{}, BaseURLResponse](ctx, c, opFetchBaseURL, struct{}{})
}

func (c *Client) CreateInstance(ctx context.Context, instance *Instance) (*Instance, error) {
	return sendRequest[*Instance, Instance](ctx, c, opCreateInstance, instance)
}

// SyncMessages acknowledges already known messages and delivery reports and
// returns the messages the backend still holds for this installation.
func (c *Client) SyncMessages(ctx context.Context, req *SyncRequest) ([]*domain.Message, error) {
	resp, err := sendRequest[*SyncRequest, SyncResponse](ctx, c, opSyncMessages, req)
	if err != nil {
		return nil, err
	}
	return c.mapper.MessagesFromPayloads(resp.Payloads), nil
}

func (c *Client) ReportDelivery(ctx context.Context, req *DeliveryReportRequest) error {
	_, err := sendRequest[*DeliveryReportRequest, struct{}](ctx, c, opReportDelivery, req)
	return err
}

func (c *Client) ReportSeen(ctx context.Context, req *SeenReportRequest) error {
	_, err := sendRequest[*SeenReportRequest, struct{}](ctx, c, opReportSeen, req)
	return err
}

// SendMO sends mobile originated messages. Messages without an ID get a
// random one before sending.
func (c *Client) SendMO(ctx context.Context, req *MORequest) (*MOResponse, error) {
	if req == nil {
		return sendRequest[*MORequest, MOResponse](ctx, c, opSendMO, nil)
	}
	for i := range req.Messages {
		if req.Messages[i].MessageID == "" {
			req.Messages[i].MessageID = uuid.NewString()
		}
	}
	return sendRequest[*MORequest, MOResponse](ctx, c, opSendMO, req)
}

func (c *Client) ReportClick(ctx context.Context, click ClickReport) error {
	if click.UserAgent == "" {
		click.UserAgent = c.userAgent
	}
	_, err := sendRequest[ClickReport, struct{}](ctx, c, opReportClick, click)
	return err
}

func (c *Client) FetchVersion(ctx context.Context) (*VersionResponse, error) {
	return sendRequest[struct{}, VersionResponse](ctx, c, opFetchVersion, struct{}{})
}

func sendRequest[A any, Resp any](ctx context.Context, c *Client, op request.Operation[A], args A) (*Resp, error) {
	name := op.Name()

	req, err := op.Build(c.builder, args)
	if err != nil {
		c.metrics.observe(name, outcomeBuild, time.Time{})
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	start := time.Now()
	resp, err := c.transport.Execute(ctx, req)
	if err != nil {
		c.metrics.observe(name, outcomeTransport, start)
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if !resp.Success() {
		c.metrics.observe(name, outcomeAPIError, start)
		apiErr := newAPIError(c.serializer, resp.StatusCode, resp.Body)
		c.logger.Warn("mobile api returned error",
			"operation", name,
			"status", apiErr.StatusCode,
			"code", apiErr.Code,
		)
		return nil, apiErr
	}

	var out Resp
	// Operations without a response type ignore the body.
	if _, none := any(out).(struct{}); !none && len(resp.Body) > 0 {
		if err := c.serializer.DeserializeInto(string(resp.Body), &out); err != nil {
			c.metrics.observe(name, outcomeDecode, start)
			return nil, fmt.Errorf("%s: decode response: %w", name, err)
		}
	}

	c.metrics.observe(name, outcomeSuccess, start)
	return &out, nil
}
