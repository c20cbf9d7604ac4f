package mapping

import (
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/dalpho/currency_exchange_app/internal/models"
)

// ToModelRateHistory converts a domain RateHistory to a model RateHistory
func ToModelRateHistory(d domain.RateHistory) models.RateHistory {
	return models.RateHistory{
		RateHistoryID:  d.RateHistoryID,
		ExchangeRateID: d.ExchangeRateID,
		FromCurrencyID: d.FromCurrencyID,
		ToCurrencyID:   d.ToCurrencyID,
		OldRate:        d.OldRate,
		NewRate:        d.NewRate,
		ChangedBy:      d.ChangedBy,
		ChangeReason:   d.ChangeReason,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainRateHistory converts a model RateHistory to a domain RateHistory
func ToDomainRateHistory(m models.RateHistory) domain.RateHistory {
	return domain.RateHistory{
		RateHistoryID:  m.RateHistoryID,
		ExchangeRateID: m.ExchangeRateID,
		FromCurrencyID: m.FromCurrencyID,
		ToCurrencyID:   m.ToCurrencyID,
		OldRate:        m.OldRate,
		NewRate:        m.NewRate,
		ChangedBy:      m.ChangedBy,
		ChangeReason:   m.ChangeReason,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainRateHistorySlice converts a slice of model RateHistories to a slice of domain RateHistories
func ToDomainRateHistorySlice(ms []models.RateHistory) []domain.RateHistory {
	ds := make([]domain.RateHistory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRateHistory(m)
	}
	return ds
}
