package dto

import (
	"time"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Code     string `json:"code" binding:"required,currencycode"`
	Name     string `json:"name" binding:"required,max=100"`
	Symbol   string `json:"symbol" binding:"required,max=10"`
	IsActive *bool  `json:"isActive"`
	IsBase   bool   `json:"isBase"`
}

// UpdateCurrencyRequest defines a partial currency update. Nil fields are left
// untouched.
type UpdateCurrencyRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Symbol   *string `json:"symbol" binding:"omitempty,max=10"`
	IsActive *bool   `json:"isActive"`
	IsBase   *bool   `json:"isBase"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID    string    `json:"currencyID"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	IsActive      bool      `json:"isActive"`
	IsBase        bool      `json:"isBase"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to a CurrencyResponse DTO.
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:    curr.CurrencyID,
		Code:          curr.Code,
		Name:          curr.Name,
		Symbol:        curr.Symbol,
		IsActive:      curr.IsActive,
		IsBase:        curr.IsBase,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain currencies to DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
