package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"studymate/internal/models/db_models"
	"studymate/internal/models/request_models"
	"studymate/internal/services"
	"studymate/pkg/utils"
)

type UsageController struct {
	entitlementService services.EntitlementServiceInterface
}

func NewUsageController(entitlementService services.EntitlementServiceInterface) *UsageController {
	return &UsageController{
		entitlementService: entitlementService,
	}
}

// GetUsage godoc
// @Summary Get current usage and limits
// @Description Returns the caller's tier, per-feature usage counts, limits and tier history
// @Tags Usage
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /usage [get]
func (u *UsageController) GetUsage(c *gin.Context) {
	userID := c.GetString("user_id")

	report, err := u.entitlementService.GetUserUsage(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Usage fetched successfully")
}

// UpdateTier godoc
// @Summary Change the caller's subscription tier
// @Description Updates the tier and appends a tier history entry
// @Tags Usage
// @Accept json
// @Produce json
// @Param request body request_models.UpdateTierRequest true "Tier update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /usage/tier [post]
func (u *UsageController) UpdateTier(c *gin.Context) {
	var req request_models.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")
	reason := req.Reason
	if reason == "" {
		reason = "user request"
	}

	if err := u.entitlementService.UpdateTier(c.Request.Context(), userID, db_models.Tier(req.Tier), reason); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"tier": req.Tier}, "Tier updated successfully")
}
