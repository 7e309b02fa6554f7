package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"client not found keeps domain code", ErrCodeClientNotFound, http.StatusNotFound},
		{"draft not found keeps domain code", ErrCodeDraftNotFound, http.StatusNotFound},
		{"product not found keeps domain code", ErrCodeProductNotFound, http.StatusNotFound},
		{"delivery date", ErrCodeInvalidDeliveryDate, http.StatusBadRequest},
		{"status filter", ErrCodeInvalidStatus, http.StatusBadRequest},
		{"order validation", ErrCodeOrderValidationFailed, http.StatusUnprocessableEntity},
		{"owner missing is internal", ErrCodeOwnerNotFound, http.StatusInternalServerError},
		{"forbidden", ErrCodeForbidden, http.StatusForbidden},
		{"conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"unknown code falls back to 500", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeForbidden, NormalizeErrorCode("FORBIDDEN"))

	// Ordering codes pass through untouched
	assert.Equal(t, "CLIENT_NOT_FOUND", NormalizeErrorCode("CLIENT_NOT_FOUND"))
	assert.Equal(t, "ORDER_VALIDATION_FAILED", NormalizeErrorCode("ORDER_VALIDATION_FAILED"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeBadRequest, "nope", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.False(t, resp.Error.Timestamp.IsZero())
}
