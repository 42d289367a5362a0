// Package valueobject contains immutable domain value types and helpers.
package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount as Indonesian Rupiah, e.g. "Rp 1.250.000".
// The transaction table, the PDF report and the Excel workbook all render
// currency through this one function so exported numbers match displayed
// numbers exactly.
func FormatRupiah(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("Rp ")

	// Insert dots as thousand separators, right to left.
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return b.String()
}

// FormatPercent renders a ratio already expressed in percent with one
// decimal place, e.g. "37.5%".
func FormatPercent(value float64) string {
	return decimal.NewFromFloat(value).Round(1).String() + "%"
}
