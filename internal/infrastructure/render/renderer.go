// Package render produces read-only presentations of an invoice: the HTML
// preview and the PDF and XLSX exports. Renderers never modify the document.
package render

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/garyjia/rental-invoice/internal/domain/entity"
	"github.com/garyjia/rental-invoice/internal/domain/totals"
)

// Currency describes how amounts are labelled. Code is used where the
// symbol cannot be drawn, such as the built-in PDF fonts.
type Currency struct {
	Symbol string
	Code   string
}

// DefaultCurrency is the naira
var DefaultCurrency = Currency{Symbol: totals.DefaultCurrencySymbol, Code: "NGN"}

// Input is everything a renderer needs
type Input struct {
	Invoice  entity.Invoice
	Totals   totals.Totals
	Currency Currency
}

// NewInput derives the totals for inv and bundles them for rendering
func NewInput(inv entity.Invoice, currency Currency) Input {
	return Input{
		Invoice:  inv,
		Totals:   totals.Compute(inv),
		Currency: currency,
	}
}

// Renderer turns an Input into a document of one Format
type Renderer interface {
	Format() Format
	Render(ctx context.Context, in Input) ([]byte, error)
}

// Registry selects a renderer by format
type Registry struct {
	renderers map[Format]Renderer
}

// NewRegistry creates a registry from the given renderers
func NewRegistry(renderers ...Renderer) *Registry {
	reg := &Registry{renderers: make(map[Format]Renderer, len(renderers))}
	for _, r := range renderers {
		reg.renderers[r.Format()] = r
	}
	return reg
}

// For returns the renderer for format
func (r *Registry) For(format Format) (Renderer, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return renderer, nil
}

// Formats lists the registered formats in name order
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.renderers))
	for f := range r.renderers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Placeholder text shown for empty contact fields
const (
	placeholderCompanyName     = "Your Company"
	placeholderCompanyAddress  = "123 Main St, City, State 12345"
	placeholderCompanyPhone    = "(123) 456-7890"
	placeholderCompanyEmail    = "contact@yourcompany.com"
	placeholderCompanyWebsite  = "yourcompany.com"
	placeholderInvoiceNumber   = "INV-001"
	placeholderCustomerName    = "Customer Name"
	placeholderCustomerAddress = "456 Customer Ave, City, State 67890"
	placeholderCustomerPhone   = "(987) 654-3210"
	placeholderCustomerEmail   = "customer@email.com"
	thankYouLine               = "Thank you for your business!"
)

// View is the formatted, placeholder-filled form of an Input shared by all renderers
type View struct {
	Logo           string
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CompanyWebsite string

	InvoiceNumber string
	InvoiceDate   string
	DueDate       string

	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	CustomerEmail   string

	Items []ItemView

	Subtotal  string
	TaxLabel  string
	TaxAmount string
	Total     string

	Notes      string
	NoteLines  []string
	FooterLine string
	ThankYou   string
}

// ItemView is one formatted line item row
type ItemView struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
	RawAmount   float64
}

// NewView formats in for display
func NewView(in Input) View {
	inv := in.Invoice
	symbol := in.Currency.Symbol

	v := View{
		Logo:           inv.Company.Logo,
		CompanyName:    orDefault(inv.Company.Name, placeholderCompanyName),
		CompanyAddress: orDefault(inv.Company.Address, placeholderCompanyAddress),
		CompanyPhone:   orDefault(inv.Company.Phone, placeholderCompanyPhone),
		CompanyEmail:   orDefault(inv.Company.Email, placeholderCompanyEmail),
		CompanyWebsite: orDefault(inv.Company.Website, placeholderCompanyWebsite),

		InvoiceNumber: orDefault(inv.InvoiceNumber, placeholderInvoiceNumber),
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,

		CustomerName:    orDefault(inv.Customer.Name, placeholderCustomerName),
		CustomerAddress: orDefault(inv.Customer.Address, placeholderCustomerAddress),
		CustomerPhone:   orDefault(inv.Customer.Phone, placeholderCustomerPhone),
		CustomerEmail:   orDefault(inv.Customer.Email, placeholderCustomerEmail),

		Items: make([]ItemView, 0, len(inv.Items)),

		Subtotal:  totals.FormatMoney(symbol, in.Totals.Subtotal),
		TaxLabel:  fmt.Sprintf("Tax (%s%%)", totals.FormatPercent(inv.TaxRate)),
		TaxAmount: totals.FormatMoney(symbol, in.Totals.TaxAmount),
		Total:     totals.FormatMoney(symbol, in.Totals.Total),

		Notes: inv.Notes,
		// the footer shows the raw fields, without placeholders
		FooterLine: inv.Company.Name + " - " + inv.Company.Website,
		ThankYou:   thankYouLine,
	}

	if inv.Notes != "" {
		v.NoteLines = strings.Split(inv.Notes, "\n")
	}

	for _, item := range inv.Items {
		v.Items = append(v.Items, ItemView{
			Description: item.Description,
			Quantity:    totals.FormatQuantity(item.Quantity),
			Rate:        totals.FormatMoney(symbol, item.Rate),
			Amount:      totals.FormatMoney(symbol, item.Amount()),
			RawAmount:   item.Amount(),
		})
	}

	return v
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
