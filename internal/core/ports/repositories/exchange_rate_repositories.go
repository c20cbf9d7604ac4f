package repositories

import (
	"context"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
)

// ListRatesFilter narrows ListExchangeRates. Nil pointer fields are ignored.
type ListRatesFilter struct {
	FromCurrencyID *string
	ToCurrencyID   *string
	AgentID        *string
	CurrentOnly    bool
}

// ExchangeRateRepository defines the persistence operations for exchange rate
// quotes. The two mutating ...WithHistory methods run demotion, row write and
// ledger append inside a single transaction so the single-current-per-pair
// invariant and the gap-free audit trail survive concurrent writers.
type ExchangeRateRepository interface {
	// CreateRateWithHistory demotes any current row for the pair, inserts the
	// new current row, and appends the creation ledger entry atomically.
	CreateRateWithHistory(ctx context.Context, rate domain.ExchangeRate, entry domain.RateHistory) error

	// UpdateRateWithHistory persists the updated row and, when entry is
	// non-nil, appends the ledger entry in the same transaction. It never
	// touches the is_current flag of other rows.
	UpdateRateWithHistory(ctx context.Context, rate domain.ExchangeRate, entry *domain.RateHistory) error

	// DeleteRate hard-deletes a quote. Ledger rows are left in place.
	DeleteRate(ctx context.Context, rateID string) error

	FindRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// FindCurrentRate returns the is_current row for the pair whose effective
	// date is not in the future, most recent effective date first.
	FindCurrentRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (*domain.ExchangeRate, error)

	// ListCurrentRates returns every current, effective quote.
	ListCurrentRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// ListRates returns a page of quotes ordered by effective_date desc,
	// created_at desc, plus the unpaginated total.
	ListRates(ctx context.Context, filter ListRatesFilter, page, pageSize int) ([]domain.ExchangeRate, int, error)
}
