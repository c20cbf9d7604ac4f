package repositories

import (
	"context"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
)

// HistoryStatsFilter narrows the ledger slice used for in-memory statistics.
// Pair filtering applies only when both currency ids are set; Days of zero
// means no recency cut-off.
type HistoryStatsFilter struct {
	FromCurrencyID string
	ToCurrencyID   string
	Days           int
}

// RateHistoryRepository defines the read operations over the append-only rate
// transition ledger. Writes happen exclusively through the exchange rate
// repository's transactional methods.
type RateHistoryRepository interface {
	// ListByRateID returns the ledger of one quote, most recent first.
	ListByRateID(ctx context.Context, exchangeRateID string, page, pageSize int) ([]domain.RateHistory, int, error)

	// ListByPair returns ledger entries for a currency pair, optionally
	// restricted to the last days days (0 = all), most recent first.
	ListByPair(ctx context.Context, fromCurrencyID, toCurrencyID string, days, page, pageSize int) ([]domain.RateHistory, int, error)

	// ListByAgent returns entries recorded by one acting agent, most recent first.
	ListByAgent(ctx context.Context, agentID string, page, pageSize int) ([]domain.RateHistory, int, error)

	// ListRecent returns entries from the last days days, most recent first.
	ListRecent(ctx context.Context, days, page, pageSize int) ([]domain.RateHistory, int, error)

	// ListForStats returns the full filtered set (no pagination), most recent
	// first, for in-memory aggregation.
	ListForStats(ctx context.Context, filter HistoryStatsFilter) ([]domain.RateHistory, error)
}
