package entitlement_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"studymate/internal/api/controllers"
	"studymate/internal/repositories"
	"studymate/internal/services"
)

var Module = fx.Provide(
	provideSubscriptionRepo, provideUsageRepo, provideTierHistoryRepo,
	provideEntitlementService, provideUsageController)

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideUsageRepo(db *gorm.DB) repositories.UsageRepository {
	return repositories.NewUsageRepository(db)
}

func provideTierHistoryRepo(db *gorm.DB) repositories.TierHistoryRepository {
	return repositories.NewTierHistoryRepository(db)
}

func provideEntitlementService(
	subRepo repositories.SubscriptionRepository,
	usageRepo repositories.UsageRepository,
	historyRepo repositories.TierHistoryRepository,
) services.EntitlementServiceInterface {
	failOpen, _ := strconv.ParseBool(os.Getenv("ENTITLEMENT_FAIL_OPEN"))
	return services.NewEntitlementService(subRepo, usageRepo, historyRepo, failOpen)
}

func provideUsageController(entitlementService services.EntitlementServiceInterface) *controllers.UsageController {
	return controllers.NewUsageController(entitlementService)
}
