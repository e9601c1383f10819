// Package totals computes per-line and document-level monetary amounts
// for purchases, invoices, and remissions alike.
package totals

import (
	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/types"
)

// LineAmounts holds the three derived amounts of one document line.
type LineAmounts struct {
	TotalExclVAT types.Money
	VATAmount    types.Money
	TotalInclVAT types.Money
}

// DocumentTotals holds document-level aggregates.
type DocumentTotals struct {
	SubtotalExclVAT types.Money
	VATTotal        types.Money
	Total           types.Money
}

// ZeroTotals returns zeroed document totals.
func ZeroTotals() DocumentTotals {
	return DocumentTotals{
		SubtotalExclVAT: types.ZeroMoney(),
		VATTotal:        types.ZeroMoney(),
		Total:           types.ZeroMoney(),
	}
}

// ComputeLine derives the amounts for one line. Each amount is quantized
// individually:
//
//	totalExcl = quantize(unit * quantity)
//	vat       = quantize(totalExcl * rate)
//	totalIncl = quantize(totalExcl + vat)
//
// Quantity must be a positive integer, the unit amount non-negative, and
// the tax rate a non-negative fraction.
func ComputeLine(quantity int64, unitAmount, vatRate types.Money) (LineAmounts, error) {
	if quantity <= 0 {
		return LineAmounts{}, apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", quantity)
	}
	if unitAmount.IsNegative() {
		return LineAmounts{}, apperror.NewValidation("unit amount cannot be negative")
	}
	if vatRate.IsNegative() {
		return LineAmounts{}, apperror.NewValidation("vat rate cannot be negative")
	}

	totalExcl := types.Quantize(unitAmount.Mul(types.MoneyFromInt(quantity)))
	vat := types.Quantize(totalExcl.Mul(vatRate))
	totalIncl := types.Quantize(totalExcl.Add(vat))

	return LineAmounts{
		TotalExclVAT: totalExcl,
		VATAmount:    vat,
		TotalInclVAT: totalIncl,
	}, nil
}

// Aggregate sums already-quantized per-line amounts into document totals
// and quantizes each sum. Aggregates are never recomputed from unit
// prices: summing the stored per-line fields and re-quantizing is the
// defined rounding policy, and substituting raw-total arithmetic changes
// penny-level results on multi-item documents.
func Aggregate(lines []LineAmounts) DocumentTotals {
	subtotal := types.ZeroMoney()
	vatTotal := types.ZeroMoney()
	total := types.ZeroMoney()

	for _, l := range lines {
		subtotal = subtotal.Add(l.TotalExclVAT)
		vatTotal = vatTotal.Add(l.VATAmount)
		total = total.Add(l.TotalInclVAT)
	}

	return DocumentTotals{
		SubtotalExclVAT: types.Quantize(subtotal),
		VATTotal:        types.Quantize(vatTotal),
		Total:           types.Quantize(total),
	}
}
