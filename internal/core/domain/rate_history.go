package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// History entry reasons written by the exchange rate engine.
const (
	HistoryReasonCreation   = "initial creation"
	HistoryReasonRateUpdate = "rate update"
)

// RateHistory is one append-only entry in the rate transition ledger. A nil
// OldRate marks the creation entry of an ExchangeRate; every value-changing
// update appends exactly one further entry. Entries are never mutated.
type RateHistory struct {
	RateHistoryID  string              `json:"rateHistoryID"`  // Primary Key (UUID)
	ExchangeRateID string              `json:"exchangeRateID"` // FK -> ExchangeRate
	FromCurrencyID string              `json:"fromCurrencyID"` // denormalized for pair queries
	ToCurrencyID   string              `json:"toCurrencyID"`
	OldRate        decimal.NullDecimal `json:"oldRate"`
	NewRate        decimal.Decimal     `json:"newRate"`
	ChangedBy      string              `json:"changedBy"` // FK -> User.userID
	ChangeReason   string              `json:"changeReason"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// RateDifference returns NewRate-OldRate, or nil for a creation entry.
func (h *RateHistory) RateDifference() *decimal.Decimal {
	if !h.OldRate.Valid {
		return nil
	}
	diff := h.NewRate.Sub(h.OldRate.Decimal)
	return &diff
}

// PercentageChange returns the relative change in percent, or nil when there
// is no prior rate to compare against.
func (h *RateHistory) PercentageChange() *decimal.Decimal {
	if !h.OldRate.Valid || h.OldRate.Decimal.IsZero() {
		return nil
	}
	pct := h.NewRate.Sub(h.OldRate.Decimal).Div(h.OldRate.Decimal).Mul(oneHundred)
	return &pct
}

// HistoryStats aggregates a filtered slice of the ledger, computed in memory.
// TotalVariation fields are only set when both endpoints are non-zero.
type HistoryStats struct {
	TotalChanges      int              `json:"totalChanges"`
	AverageRate       decimal.Decimal  `json:"averageRate"`
	MinRate           decimal.Decimal  `json:"minRate"`
	MaxRate           decimal.Decimal  `json:"maxRate"`
	LatestRate        decimal.Decimal  `json:"latestRate"`
	FirstRate         decimal.Decimal  `json:"firstRate"`
	TotalVariation    *decimal.Decimal `json:"totalVariation,omitempty"`
	TotalVariationPct *decimal.Decimal `json:"totalVariationPct,omitempty"`
}

// ComputeHistoryStats aggregates entries ordered most recent first.
func ComputeHistoryStats(entries []RateHistory) HistoryStats {
	stats := HistoryStats{TotalChanges: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	sum := decimal.Zero
	min := entries[0].NewRate
	max := entries[0].NewRate
	for _, e := range entries {
		sum = sum.Add(e.NewRate)
		if e.NewRate.LessThan(min) {
			min = e.NewRate
		}
		if e.NewRate.GreaterThan(max) {
			max = e.NewRate
		}
	}

	stats.AverageRate = sum.Div(decimal.NewFromInt(int64(len(entries))))
	stats.MinRate = min
	stats.MaxRate = max
	stats.LatestRate = entries[0].NewRate
	stats.FirstRate = entries[len(entries)-1].NewRate

	if !stats.FirstRate.IsZero() && !stats.LatestRate.IsZero() {
		variation := stats.LatestRate.Sub(stats.FirstRate)
		variationPct := variation.Div(stats.FirstRate).Mul(oneHundred)
		stats.TotalVariation = &variation
		stats.TotalVariationPct = &variationPct
	}

	return stats
}
