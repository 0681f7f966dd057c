package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxCents is the largest amount accepted at the input boundaries. Quantities up to 2^53
// survive every wire encoding we use without loss.
const MaxCents Cents = 1 << 53

var (
	ErrNegativeAmount = errors.New("negative amount")
	ErrAmountTooLarge = errors.New("amount too large")
)

var (
	centsPerUnit = decimal.NewFromInt(100)
	maxCents     = decimal.NewFromInt(int64(MaxCents))
)

// Cents is a monetary value in minor units.
type Cents int64

// ToCents scales d by 100 and rounds half away from zero, so 0.005 becomes 1 cent
// and 0.004 becomes 0. Values outside the int64 range are not checked; use ParseCents
// for untrusted input.
func ToCents(d decimal.Decimal) Cents {
	return Cents(d.Mul(centsPerUnit).Round(0).IntPart())
}

// ParseCents converts a non-negative amount to minor units, rejecting amounts
// above MaxCents.
func ParseCents(d decimal.Decimal) (Cents, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %v", ErrNegativeAmount, d)
	}

	scaled := d.Mul(centsPerUnit).Round(0)
	if scaled.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %v", ErrAmountTooLarge, d)
	}

	return Cents(scaled.IntPart()), nil
}

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats c in major units with two decimals, e.g. "1234.67".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}
