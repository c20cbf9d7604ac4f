package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores a quote for an ordered currency pair, with the derived
// trading statistics persisted alongside the rate. Decimals use NUMERIC(15,4).
type ExchangeRate struct {
	ExchangeRateID string              `json:"exchangeRateID" db:"exchange_rate_id"`
	FromCurrencyID string              `json:"fromCurrencyID" db:"from_currency_id"`
	ToCurrencyID   string              `json:"toCurrencyID" db:"to_currency_id"`
	Rate           decimal.Decimal     `json:"rate" db:"rate"`
	BuyRate        decimal.NullDecimal `json:"buyRate" db:"buy_rate"`
	AgentID        string              `json:"agentID" db:"agent_id"`
	EffectiveDate  time.Time           `json:"effectiveDate" db:"effective_date"`
	IsCurrent      bool                `json:"isCurrent" db:"is_current"`
	DayHigh        decimal.Decimal     `json:"dayHigh" db:"day_high"`
	DayLow         decimal.Decimal     `json:"dayLow" db:"day_low"`
	ChangeAbs      decimal.Decimal     `json:"changeAbs" db:"change_abs"`
	ChangePct      decimal.Decimal     `json:"changePct" db:"change_pct"`
	Direction      string              `json:"direction" db:"direction"`
	AuditFields
}
