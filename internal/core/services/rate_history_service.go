package services

import (
	"context"
	"fmt"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
)

// rateHistoryService exposes the rate transition ledger. It only ever reads;
// entries are written by the exchange rate service inside its transactions.
type rateHistoryService struct {
	BaseService
	historyRepo portsrepo.RateHistoryRepository
	currencySvc portssvc.CurrencySvcReader
}

// NewRateHistoryService creates a new rate history service.
func NewRateHistoryService(historyRepo portsrepo.RateHistoryRepository, currencySvc portssvc.CurrencySvcReader) portssvc.RateHistorySvcFacade {
	return &rateHistoryService{
		historyRepo: historyRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.RateHistorySvcFacade = (*rateHistoryService)(nil)

// ListHistoryByRate returns the ledger of a single quote, most recent first.
func (s *rateHistoryService) ListHistoryByRate(ctx context.Context, exchangeRateID string, page, pageSize int) ([]domain.RateHistory, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.historyRepo.ListByRateID(ctx, exchangeRateID, page, pageSize)
}

// ListHistoryByPair resolves the currency codes and returns the pair's ledger
// over the last days days.
func (s *rateHistoryService) ListHistoryByPair(ctx context.Context, fromCode, toCode string, days, page, pageSize int) ([]domain.RateHistory, int, error) {
	from, err := s.currencySvc.GetCurrencyByCode(ctx, fromCode)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve 'from' currency %s: %w", fromCode, err)
	}
	to, err := s.currencySvc.GetCurrencyByCode(ctx, toCode)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve 'to' currency %s: %w", toCode, err)
	}

	page, pageSize = normalizePage(page, pageSize)
	return s.historyRepo.ListByPair(ctx, from.CurrencyID, to.CurrencyID, days, page, pageSize)
}

// ListHistoryByAgent returns entries recorded by one agent.
func (s *rateHistoryService) ListHistoryByAgent(ctx context.Context, agentID string, page, pageSize int) ([]domain.RateHistory, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.historyRepo.ListByAgent(ctx, agentID, page, pageSize)
}

// ListRecentHistory returns entries across all pairs over the last days days.
func (s *rateHistoryService) ListRecentHistory(ctx context.Context, days, page, pageSize int) ([]domain.RateHistory, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.historyRepo.ListRecent(ctx, days, page, pageSize)
}

// GetHistoryStats loads the filtered ledger slice and aggregates it in memory.
func (s *rateHistoryService) GetHistoryStats(ctx context.Context, filter portsrepo.HistoryStatsFilter) (*domain.HistoryStats, error) {
	entries, err := s.historyRepo.ListForStats(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for stats: %w", err)
	}
	stats := domain.ComputeHistoryStats(entries)
	return &stats, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
