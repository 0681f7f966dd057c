package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Item struct {
	Denomination Cents
	Quantity     int64
}

// Distribution lists dispensed items in the order of the denomination list used to
// build it. Only items with a positive quantity are present.
type Distribution struct {
	Items     []Item
	Remainder Cents // Left over when no denomination could cover it.
}

func (d Distribution) Quantity(denomination Cents) (int64, bool) {
	for _, item := range d.Items {
		if item.Denomination == denomination {
			return item.Quantity, true
		}
	}
	return 0, false
}

func (d Distribution) Map() map[Cents]int64 {
	m := make(map[Cents]int64, len(d.Items))
	for _, item := range d.Items {
		m[item.Denomination] = item.Quantity
	}
	return m
}

// Total is the dispensed value, excluding the remainder.
func (d Distribution) Total() Cents {
	var total Cents
	for _, item := range d.Items {
		total += item.Denomination * Cents(item.Quantity)
	}
	return total
}

type Withdrawal struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	Distribution Distribution
}
