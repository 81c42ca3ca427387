package money

import "github.com/shopspring/decimal"

// Amounts flow through the pricing engine as arbitrary-precision decimals in
// major currency units. Rounding happens exactly once, at the point an amount
// is stored on an adjustment or snapshot, never mid-calculation.

var hundred = decimal.NewFromInt(100)

// FromCents converts a stored integer-cents amount into major units.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// Round rounds an amount to minor-currency precision (2 places, half away
// from zero).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Cents rounds an amount to minor-currency precision and returns it as
// integer cents, the representation persisted models use.
func Cents(d decimal.Decimal) int64 {
	return Round(d).Mul(hundred).IntPart()
}
