package distributor_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/iskorotkov/atm-cash-distribution/internal/distributor"
	"github.com/iskorotkov/atm-cash-distribution/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(values ...string) []decimal.Decimal {
	ds := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		ds = append(ds, decimal.RequireFromString(v))
	}
	return ds
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		amount        string
		denominations []decimal.Decimal
		want          []domain.Item
		wantRemainder domain.Cents
	}{
		{
			name:          "mixed bills and coins",
			amount:        "1234.67",
			denominations: distributor.Euro,
			want: []domain.Item{
				{Denomination: 50000, Quantity: 2},
				{Denomination: 20000, Quantity: 1},
				{Denomination: 2000, Quantity: 1},
				{Denomination: 1000, Quantity: 1},
				{Denomination: 200, Quantity: 2},
				{Denomination: 50, Quantity: 1},
				{Denomination: 10, Quantity: 1},
				{Denomination: 5, Quantity: 1},
				{Denomination: 1, Quantity: 2},
			},
		},
		{
			name:          "single cent",
			amount:        "0.01",
			denominations: distributor.Euro,
			want:          []domain.Item{{Denomination: 1, Quantity: 1}},
		},
		{
			name:          "two largest bills",
			amount:        "1000.00",
			denominations: distributor.Euro,
			want:          []domain.Item{{Denomination: 50000, Quantity: 2}},
		},
		{
			name:          "half cent rounds to one cent",
			amount:        "0.005",
			denominations: distributor.Euro,
			want:          []domain.Item{{Denomination: 1, Quantity: 1}},
		},
		{
			name:          "zero amount",
			amount:        "0",
			denominations: distributor.Euro,
			want:          nil,
		},
		{
			name:          "no one cent denomination leaves remainder",
			amount:        "0.08",
			denominations: decimals("0.05", "0.02"),
			want: []domain.Item{
				{Denomination: 5, Quantity: 1},
				{Denomination: 2, Quantity: 1},
			},
			wantRemainder: 1,
		},
		{
			name:          "amount smaller than every denomination",
			amount:        "3",
			denominations: decimals("5"),
			want:          nil,
			wantRemainder: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := distributor.Compute(decimal.RequireFromString(tt.amount), tt.denominations)

			assert.Equal(t, tt.want, got.Items)
			assert.Equal(t, tt.wantRemainder, got.Remainder)
		})
	}
}

func TestCompute_ReconstructsAmount(t *testing.T) {
	denominations, err := distributor.NewDenominations(distributor.Euro)
	require.NoError(t, err)

	// Every cent value up to 200.00, a prime stride up to 10000.00, and a few large ones.
	var amounts []domain.Cents
	for c := domain.Cents(0); c <= 20000; c++ {
		amounts = append(amounts, c)
	}
	for c := domain.Cents(20000); c <= 1000000; c += 997 {
		amounts = append(amounts, c)
	}
	amounts = append(amounts, 123467, 99999999, 1234567891, domain.MaxCents)

	for _, amount := range amounts {
		dist := distributor.Compute(amount.Decimal(), distributor.Euro)

		require.Equal(t, amount, dist.Total(), "amount %v", amount)
		require.Zero(t, dist.Remainder, "amount %v", amount)

		remaining := amount
		next := 0
		for _, denomination := range denominations {
			want := int64(remaining / denomination)
			remaining %= denomination

			if want == 0 {
				_, ok := dist.Quantity(denomination)
				require.False(t, ok, "amount %v: zero quantity for %v listed", amount, denomination)
				continue
			}

			require.Less(t, next, len(dist.Items), "amount %v", amount)
			require.Equal(t, domain.Item{Denomination: denomination, Quantity: want}, dist.Items[next], "amount %v", amount)
			next++
		}
		require.Len(t, dist.Items, next, "amount %v", amount)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	amount := decimal.RequireFromString("987.65")
	want := distributor.Compute(amount, distributor.Euro)

	var wg sync.WaitGroup
	results := make([]domain.Distribution, 32)
	for i := range results {
		wg.Go(func() {
			results[i] = distributor.Compute(amount, distributor.Euro)
		})
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestNewDenominations(t *testing.T) {
	tests := []struct {
		name    string
		values  []decimal.Decimal
		want    distributor.Denominations
		wantErr error
	}{
		{
			name:   "euro",
			values: distributor.Euro,
			want:   distributor.Denominations{50000, 20000, 10000, 5000, 2000, 1000, 500, 200, 100, 50, 20, 10, 5, 1},
		},
		{
			name:    "empty",
			values:  nil,
			wantErr: distributor.ErrNoDenominations,
		},
		{
			name:    "zero denomination",
			values:  decimals("1", "0"),
			wantErr: distributor.ErrNonPositiveDenomination,
		},
		{
			name:    "rounds to zero",
			values:  decimals("0.004"),
			wantErr: distributor.ErrNonPositiveDenomination,
		},
		{
			name:    "negative denomination",
			values:  decimals("-5"),
			wantErr: distributor.ErrNonPositiveDenomination,
		},
		{
			name:    "ascending",
			values:  decimals("1", "2"),
			wantErr: distributor.ErrNotDescending,
		},
		{
			name:    "duplicate",
			values:  decimals("2", "2"),
			wantErr: distributor.ErrNotDescending,
		},
		{
			name:    "duplicate after rounding",
			values:  decimals("0.011", "0.01"),
			wantErr: distributor.ErrNotDescending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := distributor.NewDenominations(tt.values)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDenominations_Distribute(t *testing.T) {
	denominations := distributor.Denominations{25, 10, 1}

	got := denominations.Distribute(30)

	// Greedy, not optimal: 25 + 5×1 instead of 3×10.
	assert.Equal(t, []domain.Item{
		{Denomination: 25, Quantity: 1},
		{Denomination: 1, Quantity: 5},
	}, got.Items)
	assert.Zero(t, got.Remainder)
}

func TestValues_UnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    distributor.Values
		wantErr bool
	}{
		{
			name: "no spaces",
			text: "0.05,0.02",
			want: distributor.Values(decimals("0.05", "0.02")),
		},
		{
			name: "spaces around values",
			text: " 500 , 0.05,\t0.01 ",
			want: distributor.Values(decimals("500", "0.05", "0.01")),
		},
		{
			name: "blank",
			text: "  ",
			want: nil,
		},
		{
			name:    "empty element",
			text:    "5,,1",
			wantErr: true,
		},
		{
			name:    "not a number",
			text:    "5,abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got distributor.Values
			err := got.UnmarshalText([]byte(tt.text))

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, tt.want[i].Equal(got[i]), "value %d: got %v", i, got[i])
			}
		})
	}
}

func TestValues_FromEnv(t *testing.T) {
	type config struct {
		Denominations distributor.Values `env:"DENOMINATIONS"`
	}

	t.Setenv("DENOMINATIONS", "0.05, 0.02, 0.01")

	c, err := env.ParseAs[config]()
	require.NoError(t, err)

	denominations, err := distributor.NewDenominations(c.Denominations)
	require.NoError(t, err)
	assert.Equal(t, distributor.Denominations{5, 2, 1}, denominations)
}
