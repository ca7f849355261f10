package utils

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subhub/internal/shared/errors"
)

// RequireParam returns a trimmed, non-empty route parameter.
// entityName is used in the error message (e.g. "clash config").
func RequireParam(c *gin.Context, paramName, entityName string) (string, error) {
	value := strings.TrimSpace(c.Param(paramName))
	if err := ValidateID(value); err != nil {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	return value, nil
}
