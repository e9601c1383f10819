package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0.005", "0.01"},
		{"0.004", "0.00"},
		{"1.015", "1.02"},
		{"1.025", "1.03"},
		{"-0.005", "-0.01"}, // ties away from zero
		{"10000.005", "10000.01"},
		{"2.999", "3.00"},
		{"7", "7.00"},
	}

	for _, tc := range cases {
		in := MustMoney(tc.in)
		got := Quantize(in)
		assert.Equal(t, tc.want, got.StringFixed(2), "Quantize(%s)", tc.in)
	}
}

func TestQuantize_ExactProductRounding(t *testing.T) {
	// 3 * 3333.335 = 10000.005, must round half-up to 10000.01.
	unit := MustMoney("3333.335")
	got := Quantize(unit.Mul(decimal.NewFromInt(3)))
	assert.True(t, got.Equal(MustMoney("10000.01")), "got %s", got)
}

func TestQuantize_Idempotent(t *testing.T) {
	m := MustMoney("129.995")
	once := Quantize(m)
	twice := Quantize(once)
	assert.True(t, once.Equal(twice))
}

func TestNewMoneyFromString_Invalid(t *testing.T) {
	_, err := NewMoneyFromString("not-a-number")
	require.Error(t, err)
}
