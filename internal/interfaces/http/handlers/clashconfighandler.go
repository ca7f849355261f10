package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subhub/internal/application/clashconfig/usecases"
	"github.com/orris-inc/subhub/internal/shared/constants"
	"github.com/orris-inc/subhub/internal/shared/logger"
	"github.com/orris-inc/subhub/internal/shared/utils"
)

// ClashConfigHandler manages merge profiles.
type ClashConfigHandler struct {
	createUseCase createClashConfigUseCase
	updateUseCase updateClashConfigUseCase
	deleteUseCase deleteClashConfigUseCase
	getUseCase    getClashConfigUseCase
	listUseCase   listClashConfigsUseCase
	mergeUseCase  mergeClashConfigUseCase
	logger        logger.Interface
}

func NewClashConfigHandler(
	createUC createClashConfigUseCase,
	updateUC updateClashConfigUseCase,
	deleteUC deleteClashConfigUseCase,
	getUC getClashConfigUseCase,
	listUC listClashConfigsUseCase,
	mergeUC mergeClashConfigUseCase,
	logger logger.Interface,
) *ClashConfigHandler {
	return &ClashConfigHandler{
		createUseCase: createUC,
		updateUseCase: updateUC,
		deleteUseCase: deleteUC,
		getUseCase:    getUC,
		listUseCase:   listUC,
		mergeUseCase:  mergeUC,
		logger:        logger,
	}
}

// ClashConfigRequest is the body for create and update. The domain tags
// reject bad input before it reaches the use case.
type ClashConfigRequest struct {
	Key          string `json:"key" binding:"required,alphanum,min=2,max=50"`
	Name         string `json:"name" binding:"required,max=255"`
	GlobalConfig string `json:"global_config" binding:"yaml_fragment"`
	Rules        string `json:"rules" binding:"clash_rules"`
}

type MergeClashConfigRequest struct {
	BaseYAML string `json:"base_yaml" binding:"required"`
}

// List handles GET /api/clash-configs
func (h *ClashConfigHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Get handles GET /api/clash-configs/:id
func (h *ClashConfigHandler) Get(c *gin.Context) {
	id, err := utils.RequireParam(c, "id", "clash config")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetClashConfigQuery{ID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Create handles POST /api/clash-configs
func (h *ClashConfigHandler) Create(c *gin.Context) {
	var req ClashConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create clash config", "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateClashConfigCommand{
		Key:          req.Key,
		Name:         req.Name,
		GlobalConfig: req.GlobalConfig,
		Rules:        req.Rules,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Clash config created successfully")
}

// Update handles PUT /api/clash-configs/:id
func (h *ClashConfigHandler) Update(c *gin.Context) {
	id, err := utils.RequireParam(c, "id", "clash config")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ClashConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update clash config",
			"clash_config_id", id,
			"error", err)
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateClashConfigCommand{
		ID:           id,
		Key:          req.Key,
		Name:         req.Name,
		GlobalConfig: req.GlobalConfig,
		Rules:        req.Rules,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Clash config updated successfully", result)
}

// Delete handles DELETE /api/clash-configs/:id
func (h *ClashConfigHandler) Delete(c *gin.Context) {
	id, err := utils.RequireParam(c, "id", "clash config")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeleteClashConfigCommand{ID: id}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// Merge handles POST /api/clash-configs/:id/merge and returns the merged YAML.
func (h *ClashConfigHandler) Merge(c *gin.Context) {
	id, err := utils.RequireParam(c, "id", "clash config")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req MergeClashConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.mergeUseCase.Execute(c.Request.Context(), usecases.MergeClashConfigCommand{
		ID:       id,
		BaseYAML: req.BaseYAML,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.Data(http.StatusOK, constants.ContentTypeYAML, []byte(result.Content))
}
