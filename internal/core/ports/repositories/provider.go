package repositories

// RepositoryProvider aggregates every repository the service layer needs.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepository
	ExchangeRateRepo ExchangeRateRepository
	RateHistoryRepo  RateHistoryRepository
	UserRepo         UserRepository
}
