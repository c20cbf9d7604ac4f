package domain

// Currency represents a currency in the exchange catalog.
type Currency struct {
	CurrencyID string `json:"currencyID"` // Primary Key (UUID)
	Code       string `json:"code"`       // ISO-like code, unique (e.g. "EUR")
	Name       string `json:"name"`       // e.g. "Euro"
	Symbol     string `json:"symbol"`     // e.g. "€"
	IsActive   bool   `json:"isActive"`
	IsBase     bool   `json:"isBase"` // at most one currency is the base at any time
	AuditFields
}
