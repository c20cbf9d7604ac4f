package dto

import (
	"time"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateHistoryResponse defines the structure for a single ledger entry.
// OldRate is null for the creation entry of a quote.
type RateHistoryResponse struct {
	RateHistoryID  string           `json:"rateHistoryID"`
	ExchangeRateID string           `json:"exchangeRateID"`
	FromCurrencyID string           `json:"fromCurrencyID"`
	ToCurrencyID   string           `json:"toCurrencyID"`
	OldRate        *decimal.Decimal `json:"oldRate"`
	NewRate        decimal.Decimal  `json:"newRate"`
	RateDifference *decimal.Decimal `json:"rateDifference,omitempty"`
	ChangePct      *decimal.Decimal `json:"changePct,omitempty"`
	ChangedBy      string           `json:"changedBy"`
	ChangeReason   string           `json:"changeReason"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ToRateHistoryResponse converts a domain.RateHistory to a response DTO.
func ToRateHistoryResponse(entry *domain.RateHistory) RateHistoryResponse {
	resp := RateHistoryResponse{
		RateHistoryID:  entry.RateHistoryID,
		ExchangeRateID: entry.ExchangeRateID,
		FromCurrencyID: entry.FromCurrencyID,
		ToCurrencyID:   entry.ToCurrencyID,
		NewRate:        entry.NewRate,
		RateDifference: entry.RateDifference(),
		ChangePct:      entry.PercentageChange(),
		ChangedBy:      entry.ChangedBy,
		ChangeReason:   entry.ChangeReason,
		CreatedAt:      entry.CreatedAt,
	}
	if entry.OldRate.Valid {
		oldRate := entry.OldRate.Decimal
		resp.OldRate = &oldRate
	}
	return resp
}

// ToListRateHistoryResponse converts a slice of ledger entries to DTOs.
func ToListRateHistoryResponse(entries []domain.RateHistory) []RateHistoryResponse {
	responses := make([]RateHistoryResponse, len(entries))
	for i := range entries {
		responses[i] = ToRateHistoryResponse(&entries[i])
	}
	return responses
}

// ListRateHistoryResponse is a paginated slice of the ledger.
type ListRateHistoryResponse struct {
	History    []RateHistoryResponse `json:"history"`
	Pagination Pagination            `json:"pagination"`
}

// HistoryStatsResponse carries the in-memory aggregation over a filtered
// ledger slice.
type HistoryStatsResponse struct {
	TotalChanges      int              `json:"totalChanges"`
	AverageRate       decimal.Decimal  `json:"averageRate"`
	MinRate           decimal.Decimal  `json:"minRate"`
	MaxRate           decimal.Decimal  `json:"maxRate"`
	LatestRate        decimal.Decimal  `json:"latestRate"`
	FirstRate         decimal.Decimal  `json:"firstRate"`
	TotalVariation    *decimal.Decimal `json:"totalVariation,omitempty"`
	TotalVariationPct *decimal.Decimal `json:"totalVariationPct,omitempty"`
}

// ToHistoryStatsResponse converts domain.HistoryStats to a response DTO.
func ToHistoryStatsResponse(stats domain.HistoryStats) HistoryStatsResponse {
	return HistoryStatsResponse{
		TotalChanges:      stats.TotalChanges,
		AverageRate:       stats.AverageRate,
		MinRate:           stats.MinRate,
		MaxRate:           stats.MaxRate,
		LatestRate:        stats.LatestRate,
		FirstRate:         stats.FirstRate,
		TotalVariation:    stats.TotalVariation,
		TotalVariationPct: stats.TotalVariationPct,
	}
}
