package application

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
)

// ErrorCategory represents the nature of an error for the report flusher
type ErrorCategory string

const (
	CategoryTransient     ErrorCategory = "TRANSIENT"
	CategoryPermanent     ErrorCategory = "PERMANENT"
	CategoryClientError   ErrorCategory = "CLIENT_ERROR"
	CategoryConfiguration ErrorCategory = "CONFIGURATION"
)

// CategorizeError determines error category for flushing and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	// Context Errors (Transient - network/timeout issues)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if errors.Is(err, domain.ErrConfiguration) {
		return CategoryConfiguration
	}

	if errors.Is(err, domain.ErrMissingRequiredParameter) ||
		errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrSerialization) ||
		domain.IsErrorCode(err, domain.ErrCodeMissingRequiredField) ||
		errors.Is(err, domain.ErrReportNotFound) {
		return CategoryClientError
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeNotFound:
			return CategoryClientError
		case ErrCodeTimeout, ErrCodeInternal:
			return CategoryTransient
		}
	}

	// Backend Errors
	if remote, ok := asRemoteError(err); ok {
		status := remote.HTTPStatus()
		switch {
		case status >= 500,
			status == http.StatusTooManyRequests,
			status == http.StatusRequestTimeout:
			return CategoryTransient
		case status == http.StatusUnauthorized, status == http.StatusForbidden:
			return CategoryConfiguration
		default:
			return CategoryPermanent
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryTransient
	}

	// Default: Transient (safe fallback)
	return CategoryTransient
}

// IsRetryable returns true if the error category suggests the report can be
// sent again later
func IsRetryable(err error) bool {
	return CategorizeError(err) == CategoryTransient
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrMissingRequiredParameter),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrSerialization),
		domain.IsErrorCode(err, domain.ErrCodeMissingRequiredField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	if _, ok := asRemoteError(err); ok {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	if errors.Is(err, domain.ErrReportNotFound) {
		return "REPORT_NOT_FOUND"
	}

	if remote, ok := asRemoteError(err); ok && remote.ErrorCode() != "" {
		return strings.ToUpper(remote.ErrorCode())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	return "INTERNAL_ERROR"
}
