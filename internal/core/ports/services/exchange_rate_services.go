package ports

import (
	"context"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	repoPorts "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ConversionResult is the outcome of applying the current rate of a pair to
// an amount.
type ConversionResult struct {
	Amount          decimal.Decimal
	FromCurrency    domain.Currency
	ToCurrency      domain.Currency
	Rate            decimal.Decimal
	ConvertedAmount decimal.Decimal
}

// ExchangeRateSvcReader defines read-only operations on quotes.
type ExchangeRateSvcReader interface {
	// GetExchangeRateByID retrieves a quote by its ID.
	GetExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRate, error)
	// GetCurrentRate retrieves the effective current quote for a pair of
	// currency codes.
	GetCurrentRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
	// ListCurrentRates returns the current quote of every pair.
	ListCurrentRates(ctx context.Context) ([]domain.ExchangeRate, error)
	// ListExchangeRates returns a filtered, paginated list of quotes with the
	// total match count.
	ListExchangeRates(ctx context.Context, filter repoPorts.ListRatesFilter, page, pageSize int) ([]domain.ExchangeRate, int, error)
	// Convert applies the current rate of the pair to an amount.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*ConversionResult, error)
}

// ExchangeRateSvcWriter defines mutating operations on quotes.
type ExchangeRateSvcWriter interface {
	// CreateExchangeRate publishes a new quote for a pair, demoting the
	// pair's previous current quote and recording a creation ledger entry.
	CreateExchangeRate(ctx context.Context, agentID string, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)
	// UpdateExchangeRate revises a quote in place. A changed rate updates the
	// derived statistics and appends a ledger entry.
	UpdateExchangeRate(ctx context.Context, agentID string, exchangeRateID string, req dto.UpdateExchangeRateRequest) (*domain.ExchangeRate, error)
	// DeleteExchangeRate removes a quote. Its ledger entries survive.
	DeleteExchangeRate(ctx context.Context, agentID string, exchangeRateID string) error
}

// ExchangeRateSvcFacade combines reader and writer operations.
type ExchangeRateSvcFacade interface {
	ExchangeRateSvcReader
	ExchangeRateSvcWriter
}
