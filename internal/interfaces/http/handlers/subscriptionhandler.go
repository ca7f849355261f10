package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subhub/internal/application/subscription/usecases"
	"github.com/orris-inc/subhub/internal/shared/constants"
	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
	"github.com/orris-inc/subhub/internal/shared/utils"
	"github.com/orris-inc/subhub/internal/shared/utils/logutil"
)

const maskedKeyPrefix = 4

// SubscriptionHandler serves rendered Clash documents to proxy clients.
type SubscriptionHandler struct {
	generateUseCase        generateSubscriptionUseCase
	generateForUserUseCase generateForUserUseCase
	logger                 logger.Interface
}

func NewSubscriptionHandler(
	generateUC generateSubscriptionUseCase,
	generateForUserUC generateForUserUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		generateUseCase:        generateUC,
		generateForUserUseCase: generateForUserUC,
		logger:                 logger,
	}
}

// GetSubscription handles GET /sub/:key?config=:profileKey
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	key := c.Param("key")

	result, err := h.generateUseCase.Execute(c.Request.Context(), usecases.GenerateSubscriptionCommand{
		SubscriptionKey: key,
		ProfileKey:      c.Query(constants.QueryConfigKey),
	})
	if err != nil {
		h.logger.Warnw("subscription request failed",
			"key", logutil.MaskKey(key, maskedKeyPrefix),
			"error", err,
		)
		writeSubscriptionError(c, err)
		return
	}

	c.Data(http.StatusOK, result.ContentType, []byte(result.Content))
}

// GetUserSubscription handles GET /api/users/:id/subscription
// Query: subconverter_id overrides the user's subconverter, config selects a profile.
func (h *SubscriptionHandler) GetUserSubscription(c *gin.Context) {
	userID, err := utils.RequireParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.GenerateForUserCommand{
		UserID:     userID,
		ProfileKey: c.Query(constants.QueryConfigKey),
	}
	if sc := strings.TrimSpace(c.Query("subconverter_id")); sc != "" {
		cmd.SubconverterID = &sc
	}

	result, err := h.generateForUserUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Data(http.StatusOK, result.ContentType, []byte(result.Content))
}

// writeSubscriptionError maps failures to the two statuses subscription
// clients understand: 404 for anything not found, 500 otherwise.
func writeSubscriptionError(c *gin.Context, err error) {
	message := err.Error()
	if appErr := errors.GetAppError(err); appErr != nil {
		message = appErr.Message
	}

	if errors.IsNotFoundError(err) || strings.Contains(strings.ToLower(message), "not found") {
		utils.PlainErrorResponse(c, http.StatusNotFound, message)
		return
	}
	utils.PlainErrorResponse(c, http.StatusInternalServerError, message)
}
