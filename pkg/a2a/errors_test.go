package a2a

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindOf(t *testing.T) {
	err := NewError(KindInvalidRequest, "task-1", "topic is required", nil)
	assert.Equal(t, KindInvalidRequest, KindOf(err))

	wrapped := fmt.Errorf("handling failed: %w", err)
	assert.Equal(t, KindInvalidRequest, KindOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(KindToolError, "task-1", "past_notes lookup failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "tool_error")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{KindMalformedEnvelope, http.StatusBadRequest},
		{KindInvalidRequest, http.StatusBadRequest},
		{KindAnswerSetMismatch, http.StatusBadRequest},
		{KindUnknownReceiver, http.StatusNotFound},
		{KindUnknownTool, http.StatusNotFound},
		{KindToolError, http.StatusBadGateway},
		{KindExplanationUnavailable, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.kind))
		})
	}
}
