// Package mapper converts push payloads to and from domain.Message.
//
// A payload is a flat JSON object. Presentation flags of silent messages,
// attachments and campaign metadata travel in a nested "internalData"
// fragment, either as an object or as a JSON string:
//
//	{
//	  "messageId": "m-1",
//	  "body": "hello",
//	  "customPayload": {"k": "v"},
//	  "internalData": "{\"silent\":{\"sound\":\"default\",\"vibrate\":true},\"atts\":[{\"url\":\"https://...\"}]}"
//	}
package mapper

import (
	"encoding/json"
	"log/slog"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/serialization"
)

const (
	keyMessageID         = "messageId"
	keyTitle             = "title"
	keyBody              = "body"
	keySound             = "sound"
	keyVibrate           = "vibrate"
	keyIcon              = "icon"
	keySilent            = "silent"
	keyCategory          = "category"
	keyFrom              = "from"
	keyReceivedTimestamp = "receivedTimestamp"
	keySeenTimestamp     = "seenTimestamp"
	keyCustomPayload     = "customPayload"
	keyDestination       = "destination"
	keyStatus            = "status"
	keyInternalData      = "internalData"

	keyAttachments       = "atts"
	keyAttachmentURL     = "url"
	keySendDateTime      = "sendDateTime"
	keyBulkID            = "bulkId"
	keyDeeplink          = "deeplink"
	keyInAppStyle        = "inAppStyle"
	keyMessageExpiration = "messageExpiration"
)

type MessageMapper struct {
	serializer *serialization.Serializer
	logger     *slog.Logger
}

func NewMessageMapper(serializer *serialization.Serializer, logger *slog.Logger) *MessageMapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageMapper{
		serializer: serializer,
		logger:     logger,
	}
}

// MessageFromString parses a push payload. Only a payload that is not a JSON
// object fails; every field is optional, including the message ID.
func (m *MessageMapper) MessageFromString(raw string) (*domain.Message, error) {
	obj, err := m.serializer.ReadObject(raw)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:                serialization.String(obj, keyMessageID),
		Title:             serialization.String(obj, keyTitle),
		Body:              serialization.String(obj, keyBody),
		Sound:             serialization.String(obj, keySound),
		Vibrate:           serialization.Bool(obj, keyVibrate),
		Icon:              serialization.String(obj, keyIcon),
		Silent:            serialization.Bool(obj, keySilent),
		Category:          serialization.String(obj, keyCategory),
		From:              serialization.String(obj, keyFrom),
		ReceivedTimestamp: serialization.Int64(obj, keyReceivedTimestamp),
		SeenTimestamp:     serialization.Int64(obj, keySeenTimestamp),
		CustomPayload:     serialization.Child(obj, keyCustomPayload),
		Destination:       serialization.String(obj, keyDestination),
		Status:            domain.MessageStatus(serialization.String(obj, keyStatus)),
	}
	if msg.Status == "" {
		msg.Status = domain.StatusUnknown
	}

	if internal := m.internalData(obj); internal != nil {
		mergeInternalData(msg, internal)
	}
	return msg, nil
}

// ApplyInternalData merges a standalone internal data fragment into msg.
func (m *MessageMapper) ApplyInternalData(msg *domain.Message, raw string) error {
	internal, err := m.serializer.ReadObject(raw)
	if err != nil {
		return err
	}
	mergeInternalData(msg, internal)
	return nil
}

// MessagesFromPayloads maps a batch of payloads. Payloads that cannot be
// parsed or carry no message ID are logged and skipped.
func (m *MessageMapper) MessagesFromPayloads(payloads []json.RawMessage) []*domain.Message {
	messages := make([]*domain.Message, 0, len(payloads))
	for i, p := range payloads {
		msg, err := m.MessageFromString(string(p))
		if err != nil {
			m.logger.Warn("skipping unreadable payload", "index", i, "error", err)
			continue
		}
		if msg.ID == "" {
			m.logger.Warn("skipping payload without message ID", "index", i)
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}

// MessageToString is the inverse of MessageFromString. Internal data is
// written as a JSON string.
//
// The custom payload goes through the serializer untyped: numbers read back
// as json.Number whatever Go type they were written from, and keys holding
// nil are dropped unless the serializer preserves nulls.
func (m *MessageMapper) MessageToString(msg *domain.Message) (string, error) {
	obj := serialization.Object{}
	putString(obj, keyMessageID, msg.ID)
	putString(obj, keyIcon, msg.Icon)
	putString(obj, keyFrom, msg.From)
	putInt(obj, keyReceivedTimestamp, msg.ReceivedTimestamp)
	putInt(obj, keySeenTimestamp, msg.SeenTimestamp)
	putString(obj, keyDestination, msg.Destination)
	putString(obj, keyStatus, string(msg.Status))
	if len(msg.CustomPayload) > 0 {
		obj[keyCustomPayload] = msg.CustomPayload
	}

	internal := serialization.Object{}
	if msg.Silent {
		obj[keySilent] = true
		silent := serialization.Object{}
		putString(silent, keyTitle, msg.Title)
		putString(silent, keyBody, msg.Body)
		putString(silent, keySound, msg.Sound)
		putString(silent, keyCategory, msg.Category)
		if msg.Vibrate {
			silent[keyVibrate] = true
		}
		internal[keySilent] = silent
	} else {
		putString(obj, keyTitle, msg.Title)
		putString(obj, keyBody, msg.Body)
		putString(obj, keySound, msg.Sound)
		putString(obj, keyCategory, msg.Category)
		if msg.Vibrate {
			obj[keyVibrate] = true
		}
	}

	if msg.ContentURL != "" {
		internal[keyAttachments] = []any{serialization.Object{keyAttachmentURL: msg.ContentURL}}
	}
	putInt(internal, keySendDateTime, msg.SentTimestamp)
	putString(internal, keyBulkID, msg.BulkID)
	putString(internal, keyDeeplink, msg.Deeplink)
	putString(internal, keyInAppStyle, msg.InAppStyle)
	putInt(internal, keyMessageExpiration, msg.ExpiresAt)

	if len(internal) > 0 {
		encoded, err := m.serializer.Serialize(internal)
		if err != nil {
			return "", err
		}
		obj[keyInternalData] = encoded
	}

	return m.serializer.Serialize(obj)
}

// internalData accepts the fragment as a nested object or as JSON text. A
// fragment that cannot be read is ignored.
func (m *MessageMapper) internalData(obj serialization.Object) serialization.Object {
	switch v := obj[keyInternalData].(type) {
	case map[string]any:
		return v
	case string:
		if v == "" {
			return nil
		}
		internal, err := m.serializer.ReadObject(v)
		if err != nil {
			m.logger.Debug("ignoring unreadable internal data", "error", err)
			return nil
		}
		return internal
	}
	return nil
}

func mergeInternalData(msg *domain.Message, internal serialization.Object) {
	if silent := serialization.Child(internal, keySilent); silent != nil {
		msg.Silent = true
		if v, ok := serialization.LookupString(silent, keyTitle); ok {
			msg.Title = v
		}
		if v, ok := serialization.LookupString(silent, keyBody); ok {
			msg.Body = v
		}
		if v, ok := serialization.LookupString(silent, keyCategory); ok {
			msg.Category = v
		}
		msg.Sound = serialization.String(silent, keySound)
		msg.Vibrate = serialization.Bool(silent, keyVibrate)
	}

	if att := serialization.ObjectAt(serialization.Items(internal, keyAttachments), 0); att != nil {
		msg.ContentURL = serialization.String(att, keyAttachmentURL)
	}
	if v := serialization.Int64(internal, keySendDateTime); v != 0 {
		msg.SentTimestamp = v
	}
	if v := serialization.String(internal, keyBulkID); v != "" {
		msg.BulkID = v
	}
	if v := serialization.String(internal, keyDeeplink); v != "" {
		msg.Deeplink = v
	}
	if v := serialization.String(internal, keyInAppStyle); v != "" {
		msg.InAppStyle = v
	}
	if v := serialization.Int64(internal, keyMessageExpiration); v != 0 {
		msg.ExpiresAt = v
	}
}

func putString(obj serialization.Object, key, v string) {
	if v != "" {
		obj[key] = v
	}
}

func putInt(obj serialization.Object, key string, v int64) {
	if v != 0 {
		obj[key] = v
	}
}
