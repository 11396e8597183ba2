package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cent is the smallest currency unit and the tolerance used when reconciling totals.
var Cent = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Round rounds d to cents, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Floor truncates d to cents toward negative infinity.
func Floor(d decimal.Decimal) decimal.Decimal {
	return d.RoundFloor(2)
}

// WithinTolerance reports whether a and b differ by no more than one cent.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Cent)
}

// HasCentPrecision reports whether d has at most 2 decimal places.
func HasCentPrecision(d decimal.Decimal) bool {
	scaled := d.Mul(hundred)
	return scaled.Equal(scaled.Floor())
}

// Percent returns pct percent of amount, unrounded.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Parse reads a currency amount such as "12.50". More than 2 decimal places is an error.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if !HasCentPrecision(d) {
		return decimal.Decimal{}, fmt.Errorf("amount %q has more than 2 decimal places", s)
	}
	return d, nil
}

// Format renders d with exactly 2 decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
