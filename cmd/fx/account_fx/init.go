package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"studymate/internal/api/controllers"
	"studymate/internal/repositories"
	"studymate/internal/services"
	mem "studymate/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountRepo, provideAccountService, provideAccountController)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	subRepo repositories.SubscriptionRepository,
	mailService services.MailServiceInterface,
	resetTokens mem.ResetTokenStore,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, subRepo, mailService, resetTokens)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
