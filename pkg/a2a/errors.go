package a2a

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies protocol and agent failures. Kinds map to HTTP
// statuses at the transport boundary.
type ErrorKind string

const (
	KindMalformedEnvelope      ErrorKind = "malformed_envelope"
	KindUnknownReceiver        ErrorKind = "unknown_receiver"
	KindInvalidRequest         ErrorKind = "invalid_request"
	KindUnknownTool            ErrorKind = "unknown_tool"
	KindToolError              ErrorKind = "tool_error"
	KindExplanationUnavailable ErrorKind = "explanation_unavailable"
	KindAnswerSetMismatch      ErrorKind = "answer_set_mismatch"
	KindInternal               ErrorKind = "internal"
)

// Error is the shared error type for protocol and agent failures.
// TaskID is carried so no failure is logged without its correlation id.
type Error struct {
	Kind    ErrorKind
	TaskID  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, taskID, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		TaskID:  taskID,
		Message: message,
		Err:     err,
	}
}

// KindOf extracts the ErrorKind from err, or KindInternal when err is
// not a protocol error.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to its transport status code.
// Validation kinds are 4xx-equivalent; capability failures are 502/504
// class, everything else is a plain 500.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindMalformedEnvelope, KindInvalidRequest, KindAnswerSetMismatch:
		return http.StatusBadRequest
	case KindUnknownReceiver, KindUnknownTool:
		return http.StatusNotFound
	case KindToolError, KindExplanationUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
