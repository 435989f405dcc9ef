package humanize_fx

import (
	"go.uber.org/fx"
	"studymate/internal/api/controllers"
	"studymate/internal/services"
	"studymate/pkg/utils"
)

var Module = fx.Provide(
	provideHumanizeService, provideHumanizeController)

func provideHumanizeService(
	entitlement services.EntitlementServiceInterface,
	chat utils.ChatClientInterface,
) services.HumanizeServiceInterface {
	return services.NewHumanizeService(entitlement, chat)
}

func provideHumanizeController(humanizeService services.HumanizeServiceInterface) *controllers.HumanizeController {
	return controllers.NewHumanizeController(humanizeService)
}
