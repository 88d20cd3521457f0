package mobileapi

import (
	"errors"
	"fmt"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/serialization"
)

// APIError is a non-2xx response from the messaging backend.
type APIError struct {
	Code       string
	Message    string
	StatusCode int
}

var _ application.RemoteError = (*APIError)(nil)

func (e *APIError) Error() string {
	return fmt.Sprintf("mobile api error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func (e *APIError) HTTPStatus() int { return e.StatusCode }

func (e *APIError) ErrorCode() string { return e.Code }

func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// newAPIError reads the backend error envelope:
//
//	{"requestError":{"serviceException":{"messageId":"...","text":"..."}}}
//
// Bodies in any other shape keep their raw text as the message.
func newAPIError(s *serialization.Serializer, status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	obj, err := s.ReadObject(string(body))
	if err == nil {
		exception := serialization.Child(serialization.Child(obj, "requestError"), "serviceException")
		apiErr.Code = serialization.String(exception, "messageId")
		apiErr.Message = serialization.String(exception, "text")
	}
	if apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	return apiErr
}
