package mobileapi

import "encoding/json"

type BaseURLResponse struct {
	BaseURL string `json:"baseUrl"`
}

// Instance is an application installation registered with the backend.
type Instance struct {
	PushRegistrationID   string         `json:"pushRegistrationId,omitempty"`
	RegistrationEnabled  *bool          `json:"regEnabled"`
	NotificationsEnabled *bool          `json:"notificationsEnabled"`
	SDKVersion           string         `json:"sdkVersion,omitempty"`
	AppVersion           string         `json:"appVersion,omitempty"`
	OS                   string         `json:"os,omitempty"`
	OSVersion            string         `json:"osVersion,omitempty"`
	DeviceManufacturer   string         `json:"deviceManufacturer,omitempty"`
	DeviceModel          string         `json:"deviceModel,omitempty"`
	Language             string         `json:"language,omitempty"`
	CustomAttributes     map[string]any `json:"customAttributes,omitempty"`
}

type SyncRequest struct {
	PushRegistrationID string   `json:"-"`
	MessageIDs         []string `json:"mIDs,omitempty"`
	DeliveryReportIDs  []string `json:"drIDs,omitempty"`
}

type SyncResponse struct {
	Payloads []json.RawMessage `json:"payloads"`
}

type DeliveryReportRequest struct {
	PushRegistrationID string   `json:"-"`
	MessageIDs         []string `json:"dlrIds"`
}

type SeenReportRequest struct {
	PushRegistrationID string        `json:"-"`
	Messages           []SeenMessage `json:"messages"`
}

// SeenMessage carries the seconds elapsed since the message was seen.
type SeenMessage struct {
	MessageID      string `json:"messageId"`
	TimestampDelta int64  `json:"timestampDelta"`
}

type MORequest struct {
	PushRegistrationID string      `json:"-"`
	From               string      `json:"from"`
	Messages           []MOMessage `json:"messages"`
}

type MOMessage struct {
	MessageID        string         `json:"messageId"`
	Destination      string         `json:"destination,omitempty"`
	Text             string         `json:"text"`
	CustomPayload    map[string]any `json:"customPayload,omitempty"`
	InitialMessageID string         `json:"initialMessageId,omitempty"`
	BulkID           string         `json:"bulkId,omitempty"`
}

type MOResponse struct {
	Messages []MOResult `json:"messages"`
}

type MOResult struct {
	MessageID     string         `json:"messageId"`
	Status        string         `json:"status"`
	StatusCode    int            `json:"statusCode"`
	Destination   string         `json:"destination"`
	Text          string         `json:"text"`
	CustomPayload map[string]any `json:"customPayload"`
}

type VersionResponse struct {
	PlatformType   string `json:"platformType"`
	LibraryVersion string `json:"libraryVersion"`
	UpdateURL      string `json:"updateUrl"`
}

// ClickReport describes a tap on a notification or one of its buttons.
// URL is the tracking link delivered with the message.
type ClickReport struct {
	URL                string
	PushRegistrationID string
	ButtonIndex        string
	UserAgent          string
}
