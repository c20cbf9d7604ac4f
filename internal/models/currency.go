package models

// Currency represents a currency row in the catalog.
type Currency struct {
	CurrencyID string `json:"currencyID" db:"currency_id"`
	Code       string `json:"code" db:"code"`
	Name       string `json:"name" db:"name"`
	Symbol     string `json:"symbol" db:"symbol"`
	IsActive   bool   `json:"isActive" db:"is_active"`
	IsBase     bool   `json:"isBase" db:"is_base_currency"`
	AuditFields
}
