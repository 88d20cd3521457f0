package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a failure of the request/serialization core
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that shares this error's code.
func (e *DomainError) Is(target error) bool {
	switch target {
	case ErrMissingRequiredParameter:
		return e.Code == ErrCodeMissingRequiredParameter
	case ErrConfiguration:
		return e.Code == ErrCodeConfiguration
	case ErrSerialization:
		return e.Code == ErrCodeSerialization
	case ErrInvalidArgument:
		return e.Code == ErrCodeInvalidArgument
	}
	return false
}

const (
	ErrCodeMissingRequiredParameter = "MISSING_REQUIRED_PARAMETER"
	ErrCodeConfiguration            = "CONFIGURATION_ERROR"
	ErrCodeSerialization            = "SERIALIZATION_ERROR"
	ErrCodeMissingRequiredField     = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidArgument          = "INVALID_ARGUMENT"
)

var (
	ErrMissingRequiredParameter = errors.New("missing required parameter")
	ErrConfiguration            = errors.New("configuration error")
	ErrSerialization            = errors.New("serialization error")
	ErrInvalidArgument          = errors.New("invalid argument")
)

func NewMissingRequiredParameterError(operation, param string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredParameter,
		Message: fmt.Sprintf("%s: parameter %q is required", operation, param),
	}
}

func NewConfigurationError(operation, reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("%s: %s", operation, reason),
	}
}

// NewInvalidArgumentError reports an argument that is bound but unusable.
func NewInvalidArgumentError(operation, param, reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("%s: parameter %q: %s", operation, param, reason),
	}
}

func NewSerializationError(reason string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeSerialization,
		Message: reason,
		Err:     err,
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
