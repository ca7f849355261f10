package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"not found", NewNotFoundError("user not found"), ErrorTypeNotFound, http.StatusNotFound},
		{"validation", NewValidationError("bad rule"), ErrorTypeValidation, http.StatusBadRequest},
		{"upstream", NewUpstreamError("conversion failed"), ErrorTypeUpstream, http.StatusBadGateway},
		{"malformed", NewMalformedInputError("globalConfig is not valid YAML"), ErrorTypeMalformedInput, http.StatusUnprocessableEntity},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_ErrorIncludesDetails(t *testing.T) {
	err := NewUpstreamError("conversion failed", "status 503")
	assert.Equal(t, "upstream_failure: conversion failed (status 503)", err.Error())

	assert.Equal(t, "not_found: user not found", NewNotFoundError("user not found").Error())
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("generate subscription: %w", NewUpstreamError("conversion failed").WithCause(cause))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsUpstreamError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.ErrorIs(t, wrapped, cause)

	assert.True(t, IsMalformedInputError(NewMalformedInputError("x")))
	assert.True(t, IsValidationError(NewValidationError("x")))
	assert.True(t, IsConflictError(NewConflictError("x")))
	assert.Nil(t, GetAppError(errors.New("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(errors.New("Error 1062: Duplicate entry 'acme' for key 'key'")))
	assert.True(t, IsDuplicateError(errors.New("UNIQUE constraint failed: clash_configs.key")))
	assert.False(t, IsDuplicateError(errors.New("record not found")))
	assert.False(t, IsDuplicateError(nil))
}
