// Package totals derives the subtotal, tax and grand total of an invoice.
// Nothing is cached: every call recomputes from the line items.
package totals

import "github.com/garyjia/rental-invoice/internal/domain/entity"

// Totals holds the unrounded derived amounts of one invoice
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// Subtotal sums quantity * rate over the items in list order
func Subtotal(inv entity.Invoice) float64 {
	sum := 0.0
	for _, item := range inv.Items {
		sum += item.Amount()
	}
	return sum
}

// TaxAmount applies the invoice tax percentage to the subtotal
func TaxAmount(inv entity.Invoice) float64 {
	return taxOn(Subtotal(inv), inv.TaxRate)
}

// Total is subtotal plus tax
func Total(inv entity.Invoice) float64 {
	return Compute(inv).Total
}

// Compute derives all three amounts from a single subtotal pass, so
// Total == Subtotal + TaxAmount holds exactly.
func Compute(inv entity.Invoice) Totals {
	subtotal := Subtotal(inv)
	tax := taxOn(subtotal, inv.TaxRate)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal + tax,
	}
}

func taxOn(subtotal, ratePercent float64) float64 {
	return subtotal * (ratePercent / 100)
}
