package services

import (
	"context"

	"studymate/internal/models/response_models"
	"studymate/internal/repositories"
	"studymate/pkg/utils"
)

type PlanServiceInterface interface {
	ListPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error)
}

type planService struct {
	planRepo repositories.IPlanRepository
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &planService{planRepo: planRepo}
}

func (p *planService) ListPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error) {
	plans, err := p.planRepo.GetAllPlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SubscriptionPlan, 0, len(plans))
	for _, plan := range plans {
		out = append(out, response_models.SubscriptionPlan{
			ID:          plan.ID,
			Code:        plan.Code,
			Name:        plan.Name,
			Description: plan.Description,
			Price:       plan.PriceMinor,
			Currency:    plan.Currency,
			Period:      string(plan.Period),
			Tier:        string(plan.Tier),
			IsActive:    plan.IsActive,
		})
	}
	return out, nil
}
