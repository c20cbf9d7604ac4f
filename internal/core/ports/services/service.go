package ports

// ServiceContainer aggregates every service facade the handler layer needs.
type ServiceContainer struct {
	CurrencySvc     CurrencySvcFacade
	ExchangeRateSvc ExchangeRateSvcFacade
	RateHistorySvc  RateHistorySvcFacade
	UserSvc         UserSvcFacade
	TokenSvc        TokenSvcFacade
	GoogleOAuthSvc  GoogleOAuthHandlerSvcFacade
}
