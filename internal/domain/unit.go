package domain

const (
	UnitCentCoin Unit = iota
	UnitCoin
	UnitBill
)

type Unit int

// UnitOf classifies a denomination: 5.00 and above is a bill, 1.00 up to 5.00 a coin,
// anything smaller a cent coin.
func UnitOf(c Cents) Unit {
	switch {
	case c >= 500:
		return UnitBill
	case c >= 100:
		return UnitCoin
	default:
		return UnitCentCoin
	}
}

func (u Unit) String() string {
	switch u {
	case UnitBill:
		return "bill"
	case UnitCoin:
		return "coin"
	case UnitCentCoin:
		return "cent coin"
	default:
		return "unknown"
	}
}
