package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfarer/internal/api/controllers"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var Module = fx.Provide(
	ProvideAccountRepository,
	ProvideAccountService,
	ProvideAccountController)

func ProvideAccountRepository(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func ProvideAccountService(accountRepo repositories.AccountRepository) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo)
}

func ProvideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
