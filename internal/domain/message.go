// Package domain holds the messaging entities shared by the mapper, the
// mobile API client and the report queue.
package domain

import "maps"

// MessageStatus represents the delivery state of a message on this device
type MessageStatus string

const (
	StatusUnknown   MessageStatus = "UNKNOWN"
	StatusSuccess   MessageStatus = "SUCCESS"
	StatusError     MessageStatus = "ERROR"
	StatusDelivered MessageStatus = "DELIVERED"
	StatusSeen      MessageStatus = "SEEN"
)

// Message is a push message as seen by the client. The fields below Status are
// carried in the internal data fragment on the wire.
type Message struct {
	ID                string
	Title             string
	Body              string
	Sound             string
	Vibrate           bool
	Icon              string
	Silent            bool
	Category          string
	From              string
	ReceivedTimestamp int64
	SeenTimestamp     int64
	SentTimestamp     int64
	ContentURL        string
	CustomPayload     map[string]any
	Destination       string
	Status            MessageStatus

	BulkID     string
	Deeplink   string
	InAppStyle string
	ExpiresAt  int64
}

func NewMessage(id, body string) (*Message, error) {
	if id == "" {
		return nil, NewMissingRequiredFieldError("message ID")
	}

	return &Message{
		ID:     id,
		Body:   body,
		Status: StatusUnknown,
	}, nil
}

// MarkSeen records the first time the message was seen. Later calls keep the
// original timestamp.
func (m *Message) MarkSeen(at int64) {
	if m.SeenTimestamp != 0 {
		return
	}
	m.SeenTimestamp = at
	m.Status = StatusSeen
}

func (m *Message) IsExpired(now int64) bool {
	return m.ExpiresAt > 0 && now >= m.ExpiresAt
}

// Clone returns a copy whose custom payload can be modified independently.
func (m *Message) Clone() *Message {
	c := *m
	if m.CustomPayload != nil {
		c.CustomPayload = maps.Clone(m.CustomPayload)
	}
	return &c
}
