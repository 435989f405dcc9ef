package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"studymate/internal/models/request_models"
	"studymate/internal/services"
	"studymate/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
	planService    services.PlanServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface, planService services.PlanServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		planService:    planService,
	}
}

// ListPlans godoc
// @Summary List available subscription plans
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (p *PaymentController) ListPlans(c *gin.Context) {
	plans, err := p.planService.ListPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// CreateCheckout godoc
// @Summary Create a payment link for a plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentRequest true "Checkout payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	var req request_models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	checkout, err := p.paymentService.CreateCheckoutForPlan(c.Request.Context(), userID, req.PlanCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout created successfully")
}

// HandleWebhook godoc
// @Summary Payment provider webhook
// @Description Receives and verifies payment notifications from the provider
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /payments/webhook [post]
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := p.paymentService.HandleWebhook(c.Request.Context(), rawBody); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Webhook processed")
}
