package mobileapi

import (
	"context"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
)

// Reporter adapts Client to application.Reporter for one push registration.
type Reporter struct {
	client             *Client
	pushRegistrationID string
}

var _ application.Reporter = (*Reporter)(nil)

func NewReporter(client *Client, pushRegistrationID string) *Reporter {
	return &Reporter{client: client, pushRegistrationID: pushRegistrationID}
}

func (r *Reporter) ReportDelivered(ctx context.Context, messageIDs []string) error {
	return r.client.ReportDelivery(ctx, &DeliveryReportRequest{
		PushRegistrationID: r.pushRegistrationID,
		MessageIDs:         messageIDs,
	})
}

func (r *Reporter) ReportSeen(ctx context.Context, seen []application.SeenReport) error {
	messages := make([]SeenMessage, len(seen))
	for i, s := range seen {
		messages[i] = SeenMessage{MessageID: s.MessageID, TimestampDelta: s.TimestampDelta}
	}
	return r.client.ReportSeen(ctx, &SeenReportRequest{
		PushRegistrationID: r.pushRegistrationID,
		Messages:           messages,
	})
}
