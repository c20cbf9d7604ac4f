package domain_test

import (
	"testing"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExchangeRate_InitializeStats(t *testing.T) {
	rate := domain.ExchangeRate{
		Rate: decimal.NewFromInt(10700),
	}

	rate.InitializeStats()

	assert.True(t, rate.DayHigh.Equal(decimal.NewFromInt(10700)))
	assert.True(t, rate.DayLow.Equal(decimal.NewFromInt(10700)))
	assert.True(t, rate.ChangeAbs.IsZero())
	assert.True(t, rate.ChangePct.IsZero())
	assert.Equal(t, domain.DirectionFlat, rate.Direction)
}

func TestExchangeRate_ApplyRateChange(t *testing.T) {
	tests := []struct {
		name          string
		initialRate   decimal.Decimal
		newRate       decimal.Decimal
		wantChangeAbs decimal.Decimal
		wantChangePct decimal.Decimal
		wantDirection domain.RateDirection
		wantHigh      decimal.Decimal
		wantLow       decimal.Decimal
	}{
		{
			name:          "rate increase",
			initialRate:   decimal.NewFromInt(10700),
			newRate:       decimal.NewFromInt(10800),
			wantChangeAbs: decimal.NewFromInt(100),
			wantChangePct: decimal.RequireFromString("0.9346"),
			wantDirection: domain.DirectionUp,
			wantHigh:      decimal.NewFromInt(10800),
			wantLow:       decimal.NewFromInt(10700),
		},
		{
			name:          "rate decrease",
			initialRate:   decimal.NewFromInt(10800),
			newRate:       decimal.NewFromInt(10692),
			wantChangeAbs: decimal.NewFromInt(-108),
			wantChangePct: decimal.NewFromInt(-1),
			wantDirection: domain.DirectionDown,
			wantHigh:      decimal.NewFromInt(10800),
			wantLow:       decimal.NewFromInt(10692),
		},
		{
			name:          "unchanged rate stays flat",
			initialRate:   decimal.NewFromInt(10700),
			newRate:       decimal.NewFromInt(10700),
			wantChangeAbs: decimal.Zero,
			wantChangePct: decimal.Zero,
			wantDirection: domain.DirectionFlat,
			wantHigh:      decimal.NewFromInt(10700),
			wantLow:       decimal.NewFromInt(10700),
		},
		{
			name:          "zero previous rate yields zero percentage",
			initialRate:   decimal.Zero,
			newRate:       decimal.NewFromInt(10700),
			wantChangeAbs: decimal.NewFromInt(10700),
			wantChangePct: decimal.Zero,
			wantDirection: domain.DirectionUp,
			wantHigh:      decimal.NewFromInt(10700),
			wantLow:       decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := domain.ExchangeRate{Rate: tt.initialRate}
			rate.InitializeStats()

			rate.ApplyRateChange(tt.newRate)

			assert.True(t, rate.Rate.Equal(tt.newRate), "rate: got %s", rate.Rate)
			assert.True(t, rate.ChangeAbs.Equal(tt.wantChangeAbs), "changeAbs: got %s", rate.ChangeAbs)
			assert.True(t, rate.ChangePct.Round(4).Equal(tt.wantChangePct), "changePct: got %s", rate.ChangePct)
			assert.Equal(t, tt.wantDirection, rate.Direction)
			assert.True(t, rate.DayHigh.Equal(tt.wantHigh), "dayHigh: got %s", rate.DayHigh)
			assert.True(t, rate.DayLow.Equal(tt.wantLow), "dayLow: got %s", rate.DayLow)
		})
	}
}

func TestExchangeRate_ApplyRateChange_HighLowOnlyWiden(t *testing.T) {
	rate := domain.ExchangeRate{Rate: decimal.NewFromInt(10700)}
	rate.InitializeStats()

	rate.ApplyRateChange(decimal.NewFromInt(10900))
	rate.ApplyRateChange(decimal.NewFromInt(10600))
	rate.ApplyRateChange(decimal.NewFromInt(10750))

	assert.True(t, rate.DayHigh.Equal(decimal.NewFromInt(10900)))
	assert.True(t, rate.DayLow.Equal(decimal.NewFromInt(10600)))
	assert.Equal(t, domain.DirectionUp, rate.Direction)
}

func TestExchangeRate_Convert(t *testing.T) {
	rate := domain.ExchangeRate{Rate: decimal.NewFromInt(10850)}

	converted := rate.Convert(decimal.NewFromInt(100))

	assert.True(t, converted.Equal(decimal.NewFromInt(1085000)))
}

func TestExchangeRate_InverseRate(t *testing.T) {
	rate := domain.ExchangeRate{Rate: decimal.NewFromFloat(0.85)}
	assert.True(t, rate.InverseRate().Round(6).Equal(decimal.RequireFromString("1.176471")))

	zero := domain.ExchangeRate{Rate: decimal.Zero}
	assert.True(t, zero.InverseRate().IsZero())
}

func TestRateHistory_RateDifference(t *testing.T) {
	creation := domain.RateHistory{NewRate: decimal.NewFromInt(10700)}
	assert.Nil(t, creation.RateDifference())

	update := domain.RateHistory{
		OldRate: decimal.NewNullDecimal(decimal.NewFromInt(10700)),
		NewRate: decimal.NewFromInt(10800),
	}
	diff := update.RateDifference()
	assert.NotNil(t, diff)
	assert.True(t, diff.Equal(decimal.NewFromInt(100)))
}

func TestRateHistory_PercentageChange(t *testing.T) {
	creation := domain.RateHistory{NewRate: decimal.NewFromInt(10700)}
	assert.Nil(t, creation.PercentageChange())

	zeroOld := domain.RateHistory{
		OldRate: decimal.NewNullDecimal(decimal.Zero),
		NewRate: decimal.NewFromInt(10700),
	}
	assert.Nil(t, zeroOld.PercentageChange())

	update := domain.RateHistory{
		OldRate: decimal.NewNullDecimal(decimal.NewFromInt(10700)),
		NewRate: decimal.NewFromInt(10800),
	}
	pct := update.PercentageChange()
	assert.NotNil(t, pct)
	assert.True(t, pct.Round(4).Equal(decimal.RequireFromString("0.9346")))
}

func TestComputeHistoryStats_Empty(t *testing.T) {
	stats := domain.ComputeHistoryStats(nil)

	assert.Equal(t, 0, stats.TotalChanges)
	assert.Nil(t, stats.TotalVariation)
	assert.Nil(t, stats.TotalVariationPct)
}

func TestComputeHistoryStats(t *testing.T) {
	// Entries arrive most recent first, as the repository returns them.
	entries := []domain.RateHistory{
		{NewRate: decimal.NewFromInt(10800)},
		{NewRate: decimal.NewFromInt(10600)},
		{NewRate: decimal.NewFromInt(10700)},
	}

	stats := domain.ComputeHistoryStats(entries)

	assert.Equal(t, 3, stats.TotalChanges)
	assert.True(t, stats.AverageRate.Equal(decimal.NewFromInt(10700)))
	assert.True(t, stats.MinRate.Equal(decimal.NewFromInt(10600)))
	assert.True(t, stats.MaxRate.Equal(decimal.NewFromInt(10800)))
	assert.True(t, stats.LatestRate.Equal(decimal.NewFromInt(10800)))
	assert.True(t, stats.FirstRate.Equal(decimal.NewFromInt(10700)))
	assert.NotNil(t, stats.TotalVariation)
	assert.True(t, stats.TotalVariation.Equal(decimal.NewFromInt(100)))
	assert.NotNil(t, stats.TotalVariationPct)
	assert.True(t, stats.TotalVariationPct.Round(4).Equal(decimal.RequireFromString("0.9346")))
}
