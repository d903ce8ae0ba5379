package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies API errors for status mapping.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindBadRequest ErrorKind = "bad_request"
	KindUpstream   ErrorKind = "upstream"
	KindInternal   ErrorKind = "internal"
)

// APIError is the structured error carried from services up to the
// request boundary, where it is rendered as a JSON body.
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to a response status. Validation and
// bad-request failures are user-correctable (400); upstream engine
// failures and everything unexpected surface as 500.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details.
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewBadRequestError creates a bad request error.
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewUpstreamError wraps a failure from the transcription engine. The
// engine's message is passed through verbatim; the relay has no
// multi-tenant exposure that would require scrubbing it.
func NewUpstreamError(err error) *APIError {
	return &APIError{
		Kind:    KindUpstream,
		Message: err.Error(),
	}
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// Wrap attaches a kind and context to an existing error.
func Wrap(err error, kind ErrorKind, message string) *APIError {
	if err == nil {
		return nil
	}
	return &APIError{
		Kind:    kind,
		Message: fmt.Sprintf("%s: %s", message, err),
	}
}
