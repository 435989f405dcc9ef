package request_models

type UpdateTierRequest struct {
	Tier   string `json:"tier" binding:"required"`
	Reason string `json:"reason"`
}
