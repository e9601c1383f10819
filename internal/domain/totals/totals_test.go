package totals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/types"
)

func TestComputeLine_RoundingVector(t *testing.T) {
	// quantity=3, unit=3333.335, rate=0.19:
	// 3*3333.335 = 10000.005 -> 10000.01 (half-up)
	// 10000.01*0.19 = 1900.0019 -> 1900.00
	// 10000.01+1900.00 = 11900.01
	line, err := ComputeLine(3, types.MustMoney("3333.335"), types.MustMoney("0.19"))
	require.NoError(t, err)

	assert.Equal(t, "10000.01", line.TotalExclVAT.StringFixed(2))
	assert.Equal(t, "1900.00", line.VATAmount.StringFixed(2))
	assert.Equal(t, "11900.01", line.TotalInclVAT.StringFixed(2))
}

func TestComputeLine_ZeroRate(t *testing.T) {
	line, err := ComputeLine(4, types.MustMoney("2000"), types.ZeroMoney())
	require.NoError(t, err)

	assert.Equal(t, "8000.00", line.TotalExclVAT.StringFixed(2))
	assert.True(t, line.VATAmount.IsZero())
	assert.True(t, line.TotalInclVAT.Equal(line.TotalExclVAT))
}

func TestComputeLine_RejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int64{0, -1} {
		_, err := ComputeLine(qty, types.MustMoney("10"), types.ZeroMoney())
		require.Error(t, err, "quantity %d", qty)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestComputeLine_RejectsNegativeUnit(t *testing.T) {
	_, err := ComputeLine(1, types.MustMoney("-0.01"), types.ZeroMoney())
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestAggregate_TwoTierQuantization(t *testing.T) {
	// Each line is quantized before summing; the sums are quantized
	// again. Lines whose raw products carry sub-cent residue must not
	// leak that residue into the document totals.
	var lines []LineAmounts
	for i := 0; i < 3; i++ {
		line, err := ComputeLine(1, types.MustMoney("0.335"), types.MustMoney("0.19"))
		require.NoError(t, err)
		lines = append(lines, line)
	}

	// Per line: 0.335 -> 0.34 excl, 0.34*0.19=0.0646 -> 0.06 vat, 0.40 incl.
	got := Aggregate(lines)
	assert.Equal(t, "1.02", got.SubtotalExclVAT.StringFixed(2))
	assert.Equal(t, "0.18", got.VATTotal.StringFixed(2))
	assert.Equal(t, "1.20", got.Total.StringFixed(2))

	// Computing off raw totals would give 3*0.335=1.005 -> 1.01, a
	// different subtotal: the per-line policy is the observable one.
	raw := types.Quantize(types.MustMoney("0.335").Mul(types.MoneyFromInt(3)))
	assert.Equal(t, "1.01", raw.StringFixed(2))
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	assert.True(t, got.SubtotalExclVAT.IsZero())
	assert.True(t, got.VATTotal.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestAggregate_MatchesSumOfStoredFields(t *testing.T) {
	a, err := ComputeLine(2, types.MustMoney("19.99"), types.MustMoney("0.19"))
	require.NoError(t, err)
	b, err := ComputeLine(7, types.MustMoney("3.333"), types.MustMoney("0.19"))
	require.NoError(t, err)

	got := Aggregate([]LineAmounts{a, b})

	wantSubtotal := types.Quantize(a.TotalExclVAT.Add(b.TotalExclVAT))
	wantVAT := types.Quantize(a.VATAmount.Add(b.VATAmount))
	wantTotal := types.Quantize(a.TotalInclVAT.Add(b.TotalInclVAT))

	assert.True(t, got.SubtotalExclVAT.Equal(wantSubtotal))
	assert.True(t, got.VATTotal.Equal(wantVAT))
	assert.True(t, got.Total.Equal(wantTotal))
}
