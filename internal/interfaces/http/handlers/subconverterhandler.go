package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subhub/internal/application/subscription/usecases"
	"github.com/orris-inc/subhub/internal/shared/logger"
	"github.com/orris-inc/subhub/internal/shared/utils"
)

type SubconverterHandler struct {
	verifyUseCase verifySubconverterUseCase
	logger        logger.Interface
}

func NewSubconverterHandler(verifyUC verifySubconverterUseCase, logger logger.Interface) *SubconverterHandler {
	return &SubconverterHandler{
		verifyUseCase: verifyUC,
		logger:        logger,
	}
}

type VerifySubconverterRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// Verify handles POST /api/subconverters/verify
func (h *SubconverterHandler) Verify(c *gin.Context) {
	var req VerifySubconverterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for verify subconverter", "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.verifyUseCase.Execute(c.Request.Context(), usecases.VerifySubconverterCommand{URL: req.URL})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
