package flashcard_fx

import (
	"go.uber.org/fx"
	"studymate/internal/api/controllers"
	"studymate/internal/repositories"
	"studymate/internal/services"
	mem "studymate/pkg/memcache"
	"studymate/pkg/utils"
)

var Module = fx.Provide(
	provideFlashcardService, provideFlashcardController)

func provideFlashcardService(
	entitlement services.EntitlementServiceInterface,
	contentRepo repositories.ContentRepository,
	chat utils.ChatClientInterface,
	recents *mem.RecentStores,
) services.FlashcardServiceInterface {
	return services.NewFlashcardService(entitlement, contentRepo, chat, recents.Decks)
}

func provideFlashcardController(flashcardService services.FlashcardServiceInterface) *controllers.FlashcardController {
	return controllers.NewFlashcardController(flashcardService)
}
