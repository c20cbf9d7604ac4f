package utils

import (
	"strings"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount rounded to two decimal places with comma
// thousand separators, followed by the currency code.
// Example: 1085000 with GNF returns "1,085,000.00 GNF".
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	return FormatWithSeparators(amount) + " " + currency.Code
}

// FormatWithSeparators renders an amount rounded to two decimal places with
// comma thousand separators in the integer part.
func FormatWithSeparators(amount decimal.Decimal) string {
	s := amount.Round(2).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
