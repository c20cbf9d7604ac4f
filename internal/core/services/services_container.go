package services

import (
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.CurrencySvc = NewCurrencyService(repos.CurrencyRepo)
	container.UserSvc = NewUserService(repos.UserRepo)
	container.ExchangeRateSvc = NewExchangeRateService(repos.ExchangeRateRepo, container.CurrencySvc, container.UserSvc)
	container.RateHistorySvc = NewRateHistoryService(repos.RateHistoryRepo, container.CurrencySvc)
	container.TokenSvc = NewTokenService(cfg, container.UserSvc)
	container.GoogleOAuthSvc = NewGoogleOAuthHandlerService(cfg, container.UserSvc)

	return container
}
