package types

import "github.com/shopspring/decimal"

// AmountFromCents converts an integer cents value into a decimal amount,
// e.g. 2599 -> 25.99. Prices are stored as cents everywhere; decimals only
// appear at the response boundary.
func AmountFromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// CentsFromAmount converts a decimal amount into integer cents, truncating
// anything beyond two fractional digits.
func CentsFromAmount(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}
