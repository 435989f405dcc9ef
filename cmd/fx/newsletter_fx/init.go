package newsletter_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"studymate/internal/api/controllers"
	"studymate/internal/repositories"
	"studymate/internal/services"
)

var Module = fx.Provide(
	provideNewsletterRepo, provideNewsletterService, provideNewsletterController)

func provideNewsletterRepo(db *gorm.DB) repositories.NewsletterRepository {
	return repositories.NewNewsletterRepository(db)
}

func provideNewsletterService(
	repo repositories.NewsletterRepository,
	mail services.MailServiceInterface,
) services.NewsletterServiceInterface {
	return services.NewNewsletterService(repo, mail)
}

func provideNewsletterController(newsletterService services.NewsletterServiceInterface) *controllers.NewsletterController {
	return controllers.NewNewsletterController(newsletterService)
}
