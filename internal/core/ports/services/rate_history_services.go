package ports

import (
	"context"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	repoPorts "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
)

// RateHistorySvcFacade exposes the append-only ledger. The ledger has no
// writer surface of its own, entries are recorded by the exchange rate
// service as a side effect of quote creation and revision.
type RateHistorySvcFacade interface {
	// ListHistoryByRate returns the ledger of a single quote, most recent
	// first, with the total entry count.
	ListHistoryByRate(ctx context.Context, exchangeRateID string, page, pageSize int) ([]domain.RateHistory, int, error)
	// ListHistoryByPair returns the ledger of a currency pair over the last
	// days days.
	ListHistoryByPair(ctx context.Context, fromCode, toCode string, days, page, pageSize int) ([]domain.RateHistory, int, error)
	// ListHistoryByAgent returns entries recorded by one agent.
	ListHistoryByAgent(ctx context.Context, agentID string, page, pageSize int) ([]domain.RateHistory, int, error)
	// ListRecentHistory returns entries across all pairs over the last days
	// days.
	ListRecentHistory(ctx context.Context, days, page, pageSize int) ([]domain.RateHistory, int, error)
	// GetHistoryStats aggregates the ledger entries matching the filter.
	GetHistoryStats(ctx context.Context, filter repoPorts.HistoryStatsFilter) (*domain.HistoryStats, error)
}
