package utils_test

import (
	"testing"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/dalpho/currency_exchange_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithSeparators(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{
			name:   "small amount",
			amount: decimal.NewFromInt(5),
			want:   "5.00",
		},
		{
			name:   "thousands",
			amount: decimal.NewFromInt(10850),
			want:   "10,850.00",
		},
		{
			name:   "millions",
			amount: decimal.NewFromInt(1085000),
			want:   "1,085,000.00",
		},
		{
			name:   "rounds to two decimals",
			amount: decimal.RequireFromString("1234.5678"),
			want:   "1,234.57",
		},
		{
			name:   "negative amount",
			amount: decimal.NewFromInt(-10850),
			want:   "-10,850.00",
		},
		{
			name:   "zero",
			amount: decimal.Zero,
			want:   "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatWithSeparators(tt.amount))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	gnf := domain.Currency{Code: "GNF", Symbol: "FG"}

	got := utils.FormatAmount(decimal.NewFromInt(1085000), gnf)

	assert.Equal(t, "1,085,000.00 GNF", got)
}
