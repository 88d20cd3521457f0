package domain

import (
	"errors"
	"fmt"
)

var ErrReportNotFound = errors.New("report not found")

// ReportKind identifies which backend report a pending entry belongs to
type ReportKind string

const (
	ReportDelivery ReportKind = "DELIVERY"
	ReportSeen     ReportKind = "SEEN"
)

// ReportState tracks a queued report through the flusher
type ReportState string

const (
	ReportPending ReportState = "PENDING"
	ReportSent    ReportState = "SENT"
	ReportFailed  ReportState = "FAILED"
)

// Report is a delivery or seen acknowledgement waiting to be sent to the backend.
// Key is a fingerprint of the composite identity and deduplicates reports across
// processes.
type Report struct {
	Key       string
	Kind      ReportKind
	MessageID string
	// OccurredAt is unix millis of the delivery or seen event.
	OccurredAt int64
	State      ReportState
	Attempts   int
	LastError  string
}

func NewReport(key string, kind ReportKind, messageID string, occurredAt int64) (*Report, error) {
	if key == "" {
		return nil, NewMissingRequiredFieldError("report key")
	}
	if messageID == "" {
		return nil, NewMissingRequiredFieldError("message ID")
	}
	if kind != ReportDelivery && kind != ReportSeen {
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}

	return &Report{
		Key:        key,
		Kind:       kind,
		MessageID:  messageID,
		OccurredAt: occurredAt,
		State:      ReportPending,
	}, nil
}
