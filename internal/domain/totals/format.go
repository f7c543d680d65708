package totals

import "github.com/shopspring/decimal"

// DefaultCurrencySymbol is prefixed to displayed amounts
const DefaultCurrencySymbol = "₦"

// Display holds the two-decimal strings shown to the user
type Display struct {
	Subtotal  string `json:"subtotal"`
	TaxAmount string `json:"taxAmount"`
	Total     string `json:"total"`
}

// FormatAmount renders v with exactly two decimals.
// Halves round away from zero (2.675 -> "2.68", -0.005 -> "-0.01").
func FormatAmount(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// FormatMoney prefixes the formatted amount with a currency symbol
func FormatMoney(symbol string, v float64) string {
	return symbol + FormatAmount(v)
}

// FormatQuantity renders a quantity as entered, without rounding or
// trailing zeros (3, 1.5, 1.333)
func FormatQuantity(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// FormatPercent renders a tax rate the way it was entered (7.5, 10)
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// Display formats the three totals with the given currency symbol
func (t Totals) Display(symbol string) Display {
	return Display{
		Subtotal:  FormatMoney(symbol, t.Subtotal),
		TaxAmount: FormatMoney(symbol, t.TaxAmount),
		Total:     FormatMoney(symbol, t.Total),
	}
}

// Round2 rounds v to two decimals with the same rule as FormatAmount
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
