package dto

import (
	"time"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for submitting a new quote.
// EffectiveDate defaults to now when omitted.
type CreateExchangeRateRequest struct {
	FromCurrencyID string           `json:"fromCurrencyID" binding:"required,uuid"`
	ToCurrencyID   string           `json:"toCurrencyID" binding:"required,uuid"`
	Rate           decimal.Decimal  `json:"rate" binding:"required"`
	BuyRate        *decimal.Decimal `json:"buyRate"`
	EffectiveDate  *time.Time       `json:"effectiveDate"`
}

// UpdateExchangeRateRequest defines a partial quote update. Only a changed
// Rate triggers recomputation of the derived statistics and a ledger entry.
type UpdateExchangeRateRequest struct {
	Rate          *decimal.Decimal `json:"rate"`
	BuyRate       *decimal.Decimal `json:"buyRate"`
	EffectiveDate *time.Time       `json:"effectiveDate"`
}

// ExchangeRateResponse defines the structure for API responses containing a
// quote and its derived statistics. Nested currency/agent details are filled
// when the caller eager-loads them.
type ExchangeRateResponse struct {
	ExchangeRateID string           `json:"exchangeRateID"`
	FromCurrencyID string           `json:"fromCurrencyID"`
	ToCurrencyID   string           `json:"toCurrencyID"`
	Rate           decimal.Decimal  `json:"rate"`
	BuyRate        *decimal.Decimal `json:"buyRate,omitempty"`
	AgentID        string           `json:"agentID"`
	EffectiveDate  time.Time        `json:"effectiveDate"`
	IsCurrent      bool             `json:"isCurrent"`
	DayHigh        decimal.Decimal  `json:"dayHigh"`
	DayLow         decimal.Decimal  `json:"dayLow"`
	ChangeAbs      decimal.Decimal  `json:"changeAbs"`
	ChangePct      decimal.Decimal  `json:"changePct"`
	Direction      string           `json:"direction"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastUpdatedAt  time.Time        `json:"lastUpdatedAt"`

	FromCurrency *CurrencyResponse `json:"fromCurrency,omitempty"`
	ToCurrency   *CurrencyResponse `json:"toCurrency,omitempty"`
	Agent        *UserResponse     `json:"agent,omitempty"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to a response DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	resp := ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		FromCurrencyID: rate.FromCurrencyID,
		ToCurrencyID:   rate.ToCurrencyID,
		Rate:           rate.Rate,
		AgentID:        rate.AgentID,
		EffectiveDate:  rate.EffectiveDate,
		IsCurrent:      rate.IsCurrent,
		DayHigh:        rate.DayHigh,
		DayLow:         rate.DayLow,
		ChangeAbs:      rate.ChangeAbs,
		ChangePct:      rate.ChangePct,
		Direction:      string(rate.Direction),
		CreatedAt:      rate.CreatedAt,
		LastUpdatedAt:  rate.LastUpdatedAt,
	}
	if rate.BuyRate.Valid {
		buyRate := rate.BuyRate.Decimal
		resp.BuyRate = &buyRate
	}
	return resp
}

// ToListExchangeRateResponse converts a slice of domain rates to DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ListExchangeRatesResponse is a paginated list of quotes.
type ListExchangeRatesResponse struct {
	Rates      []ExchangeRateResponse `json:"rates"`
	Pagination Pagination             `json:"pagination"`
}

// ConvertRequest defines the body of a conversion call.
type ConvertRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
}

// ConvertResponse returns the conversion result, display-rounded to two
// decimal places, plus a human formatted string.
type ConvertResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Formatted       string          `json:"formatted"`
}
