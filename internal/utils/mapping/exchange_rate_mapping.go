package mapping

import (
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/dalpho/currency_exchange_app/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		FromCurrencyID: d.FromCurrencyID,
		ToCurrencyID:   d.ToCurrencyID,
		Rate:           d.Rate,
		BuyRate:        d.BuyRate,
		AgentID:        d.AgentID,
		EffectiveDate:  d.EffectiveDate,
		IsCurrent:      d.IsCurrent,
		DayHigh:        d.DayHigh,
		DayLow:         d.DayLow,
		ChangeAbs:      d.ChangeAbs,
		ChangePct:      d.ChangePct,
		Direction:      string(d.Direction),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCurrencyID: m.FromCurrencyID,
		ToCurrencyID:   m.ToCurrencyID,
		Rate:           m.Rate,
		BuyRate:        m.BuyRate,
		AgentID:        m.AgentID,
		EffectiveDate:  m.EffectiveDate,
		IsCurrent:      m.IsCurrent,
		DayHigh:        m.DayHigh,
		DayLow:         m.DayLow,
		ChangeAbs:      m.ChangeAbs,
		ChangePct:      m.ChangePct,
		Direction:      domain.RateDirection(m.Direction),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts a slice of model ExchangeRates to a slice of domain ExchangeRates
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}
