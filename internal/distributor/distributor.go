// Package distributor splits an amount into bills and coins greedily, largest
// denomination first.
package distributor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iskorotkov/atm-cash-distribution/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNoDenominations         = errors.New("no denominations")
	ErrNonPositiveDenomination = errors.New("non-positive denomination")
	ErrNotDescending           = errors.New("denominations not strictly descending")
)

// Euro is the bill and coin set dispensed by default.
var Euro = []decimal.Decimal{
	decimal.NewFromInt(500),
	decimal.NewFromInt(200),
	decimal.NewFromInt(100),
	decimal.NewFromInt(50),
	decimal.NewFromInt(20),
	decimal.NewFromInt(10),
	decimal.NewFromInt(5),
	decimal.NewFromInt(2),
	decimal.NewFromInt(1),
	decimal.RequireFromString("0.50"),
	decimal.RequireFromString("0.20"),
	decimal.RequireFromString("0.10"),
	decimal.RequireFromString("0.05"),
	decimal.RequireFromString("0.01"),
}

// Values is a comma-separated denomination list as it appears in configuration.
// Blanks around each value are ignored.
type Values []decimal.Decimal

func (v *Values) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*v = nil
		return nil
	}

	parts := strings.Split(string(text), ",")
	values := make(Values, 0, len(parts))
	for i, part := range parts {
		d, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("denomination at position %d: %w", i, err)
		}

		values = append(values, d)
	}

	*v = values
	return nil
}

// Denominations is a validated, strictly descending list of positive values in minor units.
type Denominations []domain.Cents

func NewDenominations(values []decimal.Decimal) (Denominations, error) {
	if len(values) == 0 {
		return nil, ErrNoDenominations
	}

	denominations := make(Denominations, 0, len(values))
	for i, v := range values {
		c := domain.ToCents(v)
		if c <= 0 {
			return nil, fmt.Errorf("%w: %v at position %d", ErrNonPositiveDenomination, v, i)
		}
		if i > 0 && c >= denominations[i-1] {
			return nil, fmt.Errorf("%w: %v after %v", ErrNotDescending, c, denominations[i-1])
		}

		denominations = append(denominations, c)
	}

	return denominations, nil
}

// Distribute takes as many of each denomination as fit into what is left of amount.
// Whatever the smallest denomination cannot cover ends up in the remainder.
func (d Denominations) Distribute(amount domain.Cents) domain.Distribution {
	var dist domain.Distribution

	remaining := amount
	for _, denomination := range d {
		quantity := remaining / denomination
		if quantity > 0 {
			dist.Items = append(dist.Items, domain.Item{
				Denomination: denomination,
				Quantity:     int64(quantity),
			})
		}
		remaining %= denomination
	}

	dist.Remainder = remaining
	return dist
}

// Compute converts amount and denominations to minor units and distributes the amount.
// The caller guarantees a non-negative amount and a descending list of positive
// denominations; it is not validated here.
func Compute(amount decimal.Decimal, denominations []decimal.Decimal) domain.Distribution {
	d := make(Denominations, 0, len(denominations))
	for _, v := range denominations {
		d = append(d, domain.ToCents(v))
	}

	return d.Distribute(domain.ToCents(amount))
}
