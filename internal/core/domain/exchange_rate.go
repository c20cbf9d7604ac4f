package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateDirection is the categorical trend label derived from the sign of the
// latest rate change.
type RateDirection string

const (
	DirectionUp   RateDirection = "up"
	DirectionDown RateDirection = "down"
	DirectionFlat RateDirection = "flat"
)

// ExchangeRate is a quote for an ordered currency pair. At most one row per
// (from, to) pair carries IsCurrent=true; older quotes stay around for the
// audit trail. DayHigh/DayLow/ChangeAbs/ChangePct/Direction are running
// statistics over this row's update lineage, recomputed on every rate change.
type ExchangeRate struct {
	ExchangeRateID string              `json:"exchangeRateID"` // Primary Key (UUID)
	FromCurrencyID string              `json:"fromCurrencyID"` // FK -> Currency.currencyID
	ToCurrencyID   string              `json:"toCurrencyID"`   // FK -> Currency.currencyID
	Rate           decimal.Decimal     `json:"rate"`
	BuyRate        decimal.NullDecimal `json:"buyRate"`
	AgentID        string              `json:"agentID"` // FK -> User.userID, the agent who entered the quote
	EffectiveDate  time.Time           `json:"effectiveDate"`
	IsCurrent      bool                `json:"isCurrent"`
	DayHigh        decimal.Decimal     `json:"dayHigh"`
	DayLow         decimal.Decimal     `json:"dayLow"`
	ChangeAbs      decimal.Decimal     `json:"changeAbs"`
	ChangePct      decimal.Decimal     `json:"changePct"`
	Direction      RateDirection       `json:"direction"`
	AuditFields
}

var oneHundred = decimal.NewFromInt(100)

// InitializeStats sets the derived statistics for a freshly created quote:
// high and low collapse to the initial rate and the change is flat.
func (r *ExchangeRate) InitializeStats() {
	r.DayHigh = r.Rate
	r.DayLow = r.Rate
	r.ChangeAbs = decimal.Zero
	r.ChangePct = decimal.Zero
	r.Direction = DirectionFlat
}

// ApplyRateChange moves the row to newRate and recomputes the derived
// statistics against the previously stored rate. ChangePct is zero when the
// previous rate is zero. High/low only ever widen.
func (r *ExchangeRate) ApplyRateChange(newRate decimal.Decimal) {
	oldRate := r.Rate

	r.ChangeAbs = newRate.Sub(oldRate)
	if oldRate.IsPositive() {
		r.ChangePct = r.ChangeAbs.Div(oldRate).Mul(oneHundred)
	} else {
		r.ChangePct = decimal.Zero
	}

	switch {
	case newRate.GreaterThan(oldRate):
		r.Direction = DirectionUp
	case newRate.LessThan(oldRate):
		r.Direction = DirectionDown
	default:
		r.Direction = DirectionFlat
	}

	if newRate.GreaterThan(r.DayHigh) {
		r.DayHigh = newRate
	}
	if newRate.LessThan(r.DayLow) {
		r.DayLow = newRate
	}

	r.Rate = newRate
}

// Convert applies this quote to an amount.
func (r *ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate)
}

// InverseRate returns 1/rate, or zero for a zero rate.
func (r *ExchangeRate) InverseRate() decimal.Decimal {
	if r.Rate.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(r.Rate)
}
