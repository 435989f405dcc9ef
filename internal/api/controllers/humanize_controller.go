package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"studymate/internal/models/request_models"
	"studymate/internal/services"
	"studymate/pkg/utils"
)

type HumanizeController struct {
	humanizeService services.HumanizeServiceInterface
}

func NewHumanizeController(humanizeService services.HumanizeServiceInterface) *HumanizeController {
	return &HumanizeController{
		humanizeService: humanizeService,
	}
}

// HumanizeText godoc
// @Summary Rewrite text in a natural style
// @Description Runs the text through multiple rewriting passes in the selected style
// @Tags Humanize
// @Accept json
// @Produce json
// @Param request body request_models.HumanizeRequest true "Humanize payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /humanize [post]
func (h *HumanizeController) HumanizeText(c *gin.Context) {
	var req request_models.HumanizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	result, err := h.humanizeService.HumanizeText(c.Request.Context(), userID, req.Text, req.Style)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Text humanized successfully")
}
