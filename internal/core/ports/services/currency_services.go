package ports

import (
	"context"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/dalpho/currency_exchange_app/internal/dto"
)

// CurrencySvcReader defines read-only operations on the currency registry.
type CurrencySvcReader interface {
	// GetCurrencyByID retrieves a currency by its ID.
	GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)
	// GetCurrencyByCode retrieves a currency by its ISO-style code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	// GetBaseCurrency retrieves the single base currency, if one is set.
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)
	// ListCurrencies returns all currencies, base currency first.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	// ListActiveCurrencies returns only currencies available for quoting.
	ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencySvcWriter defines mutating operations on the currency registry.
type CurrencySvcWriter interface {
	// CreateCurrency registers a new currency. Marking it base demotes any
	// previous base currency.
	CreateCurrency(ctx context.Context, actorID string, req dto.CreateCurrencyRequest) (*domain.Currency, error)
	// UpdateCurrency applies a partial update to a currency.
	UpdateCurrency(ctx context.Context, actorID string, currencyID string, req dto.UpdateCurrencyRequest) (*domain.Currency, error)
	// ToggleCurrencyActive flips the active flag on a currency.
	ToggleCurrencyActive(ctx context.Context, actorID string, currencyID string) (*domain.Currency, error)
	// DeleteCurrency removes a currency that no exchange rate references.
	DeleteCurrency(ctx context.Context, actorID string, currencyID string) error
}

// CurrencySvcFacade combines reader and writer operations.
type CurrencySvcFacade interface {
	CurrencySvcReader
	CurrencySvcWriter
}
