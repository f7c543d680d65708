package document

import (
	"time"

	"github.com/garyjia/rental-invoice/internal/domain/entity"
)

// DefaultItemPlaceholder is the description given to items created by AddItem
const DefaultItemPlaceholder = "Additional Charge"

// dateLayout matches the value format of an HTML date input
const dateLayout = "2006-01-02"

// Defaults describes the document a session starts with
type Defaults struct {
	InvoiceNumber   string
	Company         entity.Company
	TaxRate         float64
	DueInDays       int
	Notes           string
	SeedDescription string
	SeedQuantity    float64
	SeedRate        float64
}

// DefaultDefaults returns the stock car-rental starting document settings
func DefaultDefaults() Defaults {
	return Defaults{
		InvoiceNumber:   "INV-001",
		TaxRate:         7.5,
		DueInDays:       15,
		SeedDescription: "Car Rental",
		SeedQuantity:    1,
		SeedRate:        0,
	}
}

// NewInvoice builds the session-start document dated relative to now
func NewInvoice(d Defaults, now time.Time, newID func() string) entity.Invoice {
	if newID == nil {
		newID = NewItemID
	}

	return entity.Invoice{
		InvoiceNumber: d.InvoiceNumber,
		InvoiceDate:   now.Format(dateLayout),
		DueDate:       now.AddDate(0, 0, d.DueInDays).Format(dateLayout),
		Company:       d.Company,
		Items: []entity.LineItem{
			{
				ID:          newID(),
				Description: d.SeedDescription,
				Quantity:    finite(d.SeedQuantity),
				Rate:        finite(d.SeedRate),
			},
		},
		Notes:   d.Notes,
		TaxRate: finite(d.TaxRate),
	}
}
