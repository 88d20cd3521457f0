package application_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/stretchr/testify/assert"
)

type remoteErr struct {
	status int
	code   string
}

func (e remoteErr) Error() string     { return fmt.Sprintf("remote %d %s", e.status, e.code) }
func (e remoteErr) HTTPStatus() int   { return e.status }
func (e remoteErr) ErrorCode() string { return e.code }

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want application.ErrorCategory
	}{
		{"nil", nil, ""},
		{"deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), application.CategoryTransient},
		{"configuration", domain.NewConfigurationError("op", "bad"), application.CategoryConfiguration},
		{"missing parameter", domain.NewMissingRequiredParameterError("op", "p"), application.CategoryClientError},
		{"invalid argument", domain.NewInvalidArgumentError("reportClick", "url", "not absolute"), application.CategoryClientError},
		{"serialization", domain.NewSerializationError("bad", nil), application.CategoryClientError},
		{"not found", domain.ErrReportNotFound, application.CategoryClientError},
		{"server error", remoteErr{status: http.StatusServiceUnavailable}, application.CategoryTransient},
		{"rate limited", remoteErr{status: http.StatusTooManyRequests}, application.CategoryTransient},
		{"unauthorized", remoteErr{status: http.StatusUnauthorized, code: "1"}, application.CategoryConfiguration},
		{"bad request", fmt.Errorf("wrapped: %w", remoteErr{status: http.StatusBadRequest}), application.CategoryPermanent},
		{"internal service", application.NewInternalError(errors.New("x")), application.CategoryTransient},
		{"unknown", errors.New("boom"), application.CategoryTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, application.CategorizeError(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, application.IsRetryable(remoteErr{status: http.StatusBadGateway}))
	assert.False(t, application.IsRetryable(remoteErr{status: http.StatusNotFound}))
	assert.False(t, application.IsRetryable(domain.NewConfigurationError("op", "bad")))
}

func TestToHTTPStatusAndCode(t *testing.T) {
	err := domain.NewMissingRequiredParameterError("seen", "messageId")
	assert.Equal(t, http.StatusBadRequest, application.ToHTTPStatus(err))
	assert.Equal(t, domain.ErrCodeMissingRequiredParameter, application.ToErrorCode(err))

	assert.Equal(t, http.StatusNotFound, application.ToHTTPStatus(fmt.Errorf("get: %w", domain.ErrReportNotFound)))
	assert.Equal(t, "REPORT_NOT_FOUND", application.ToErrorCode(domain.ErrReportNotFound))

	remote := remoteErr{status: http.StatusBadRequest, code: "invalid_app"}
	assert.Equal(t, http.StatusBadGateway, application.ToHTTPStatus(remote))
	assert.Equal(t, "INVALID_APP", application.ToErrorCode(remote))

	assert.Equal(t, http.StatusOK, application.ToHTTPStatus(nil))
	assert.Equal(t, "INTERNAL_ERROR", application.ToErrorCode(errors.New("x")))
}
