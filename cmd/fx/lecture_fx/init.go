package lecture_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"studymate/internal/api/controllers"
	"studymate/internal/repositories"
	"studymate/internal/services"
	mem "studymate/pkg/memcache"
	"studymate/pkg/utils"
)

var Module = fx.Provide(
	provideContentRepo, provideLectureService, provideLectureController)

func provideContentRepo(db *gorm.DB) repositories.ContentRepository {
	return repositories.NewContentRepository(db)
}

func provideLectureService(
	entitlement services.EntitlementServiceInterface,
	transcripts services.TranscriptServiceInterface,
	contentRepo repositories.ContentRepository,
	chat utils.ChatClientInterface,
	embeddings utils.EmbeddingClientInterface,
	recents *mem.RecentStores,
) services.LectureServiceInterface {
	return services.NewLectureService(entitlement, transcripts, contentRepo, chat, embeddings, recents.Lectures)
}

func provideLectureController(lectureService services.LectureServiceInterface) *controllers.LectureController {
	return controllers.NewLectureController(lectureService)
}
