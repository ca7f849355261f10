package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subhub/internal/shared/constants"
	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
	"github.com/orris-inc/subhub/internal/shared/utils"
)

// AdminTokenMiddleware guards the management API with a static bearer token.
type AdminTokenMiddleware struct {
	token  []byte
	logger logger.Interface
}

func NewAdminTokenMiddleware(token string, logger logger.Interface) *AdminTokenMiddleware {
	return &AdminTokenMiddleware{
		token:  []byte(token),
		logger: logger,
	}
}

// Enabled reports whether a token is configured.
func (m *AdminTokenMiddleware) Enabled() bool {
	return len(m.token) > 0
}

func (m *AdminTokenMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		if !m.Enabled() || subtle.ConstantTimeCompare([]byte(parts[1]), m.token) != 1 {
			m.logger.Warnw("rejected admin request", "client_ip", c.ClientIP(), "route", c.FullPath())
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
			c.Abort()
			return
		}

		c.Next()
	}
}
