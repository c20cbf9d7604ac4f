package repositories

import (
	"context"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
)

// CurrencyRepository defines the persistence operations for the currency catalog.
type CurrencyRepository interface {
	// CreateCurrency inserts a new currency. When currency.IsBase is true the
	// repository demotes every other base currency in the same transaction.
	CreateCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency persists changes to an existing currency, applying the
	// same base demotion rule when IsBase is set.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error

	// DeleteCurrency removes a currency row.
	DeleteCurrency(ctx context.Context, currencyID string) error

	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies returns all currencies, base currency first then by name.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error)

	// IsReferencedByRates reports whether any exchange rate uses the currency
	// on either side of a pair.
	IsReferencedByRates(ctx context.Context, currencyID string) (bool, error)
}
