package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFinalPrice(t *testing.T) {
	cases := []struct {
		price, discount, want float64
	}{
		{100, 0, 100},
		{100, 10, 90},
		{199000, 15, 169150},
		{49.99, 100, 0},
		{0, 50, 0},
		{1234.5, 12.5, 1080.1875},
	}
	for _, tc := range cases {
		got := ComputeFinalPrice(tc.price, tc.discount)
		assert.InDelta(t, tc.price-tc.price*tc.discount/100, got, 1e-9)
		assert.InDelta(t, tc.want, got, 1e-9)
	}
}

func TestProductRepriceFollowsPriceAndDiscount(t *testing.T) {
	p := Product{Price: 250000, Discount: 20}
	p.Reprice()
	assert.Equal(t, 200000.0, p.FinalPrice)

	p.Discount = 0
	p.Reprice()
	assert.Equal(t, 250000.0, p.FinalPrice)
}

func TestComputeFinalPriceIsExactFormula(t *testing.T) {
	for _, tc := range []struct{ price, discount float64 }{
		{33.33, 7},
		{19.99, 33},
		{0.1, 0.3},
		{1e6 + 0.01, 99.9},
	} {
		assert.Equal(t, tc.price-tc.price*tc.discount/100, ComputeFinalPrice(tc.price, tc.discount))
	}
}
