package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateHistory is an append-only ledger row recording one rate transition.
// Rows are inserted by the exchange rate repository only and never updated.
type RateHistory struct {
	RateHistoryID  string              `json:"rateHistoryID" db:"rate_history_id"`
	ExchangeRateID string              `json:"exchangeRateID" db:"exchange_rate_id"`
	FromCurrencyID string              `json:"fromCurrencyID" db:"from_currency_id"`
	ToCurrencyID   string              `json:"toCurrencyID" db:"to_currency_id"`
	OldRate        decimal.NullDecimal `json:"oldRate" db:"old_rate"`
	NewRate        decimal.Decimal     `json:"newRate" db:"new_rate"`
	ChangedBy      string              `json:"changedBy" db:"changed_by"`
	ChangeReason   string              `json:"changeReason" db:"change_reason"`
	CreatedAt      time.Time           `json:"createdAt" db:"created_at"`
}
