package entity

// Company is the issuing party. Logo holds a data URI; empty means no logo.
type Company struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
	Website string `json:"website" yaml:"website"`
	Logo    string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// HasLogo reports whether a logo image is attached
func (c Company) HasLogo() bool {
	return c.Logo != ""
}

// Customer is the billed party
type Customer struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
}

// LineItem represents one billable row on the invoice
type LineItem struct {
	ID          string  `json:"id" yaml:"id"`
	Description string  `json:"description" yaml:"description"`
	Quantity    float64 `json:"quantity" yaml:"quantity"` // days or units
	Rate        float64 `json:"rate" yaml:"rate"`         // amount per unit
}

// Amount returns quantity * rate. It is never stored.
func (li LineItem) Amount() float64 {
	return li.Quantity * li.Rate
}

// Invoice is the root document edited during a session
type Invoice struct {
	InvoiceNumber string     `json:"invoiceNumber" yaml:"invoiceNumber"`
	InvoiceDate   string     `json:"invoiceDate" yaml:"invoiceDate"`
	DueDate       string     `json:"dueDate" yaml:"dueDate"`
	Company       Company    `json:"company" yaml:"company"`
	Customer      Customer   `json:"customer" yaml:"customer"`
	Items         []LineItem `json:"items" yaml:"items"`
	Notes         string     `json:"notes" yaml:"notes"`
	TaxRate       float64    `json:"taxRate" yaml:"taxRate"` // percentage, 7.5 means 7.5%
}

// Clone returns a deep copy of the invoice.
// Party records are plain values; only the items slice needs copying.
func (inv Invoice) Clone() Invoice {
	out := inv
	if inv.Items != nil {
		out.Items = make([]LineItem, len(inv.Items))
		copy(out.Items, inv.Items)
	}
	return out
}

// ItemIndex returns the position of the item with the given id, or -1
func (inv Invoice) ItemIndex(id string) int {
	for i, item := range inv.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
