package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subhub/internal/shared/errors"
)

type keyRequest struct {
	Key   string `json:"key" validate:"required,alphanum,min=2,max=50"`
	Color string `json:"color" validate:"omitempty,test_color"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, RegisterValidation("test_color", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "red" || fl.Field().String() == "blue"
	}, "%s must be red or blue"))

	tests := []struct {
		name    string
		req     keyRequest
		wantErr string
	}{
		{name: "valid", req: keyRequest{Key: "acme", Color: "red"}},
		{name: "blank optional field", req: keyRequest{Key: "acme"}},
		{name: "missing key", req: keyRequest{}, wantErr: "key is required"},
		{name: "key with dash", req: keyRequest{Key: "a-b"}, wantErr: "alphanumeric"},
		{name: "custom tag message", req: keyRequest{Key: "acme", Color: "green"}, wantErr: "color must be red or blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, errors.GetAppError(err).Details, tt.wantErr)
		})
	}
}

func TestRegisterValidation_ReportsFailure(t *testing.T) {
	err := RegisterValidation("", func(validator.FieldLevel) bool { return true }, "%s")
	assert.Error(t, err)
}

func TestErrorResponseWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "not found", err: errors.NewNotFoundError("clash config not found"), wantCode: http.StatusNotFound},
		{name: "upstream", err: errors.NewUpstreamError("conversion failed"), wantCode: http.StatusBadGateway},
		{name: "malformed", err: errors.NewMalformedInputError("bad yaml"), wantCode: http.StatusUnprocessableEntity},
		{name: "plain error", err: assert.AnError, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.NotContains(t, w.Body.String(), assert.AnError.Error())
		})
	}
}
