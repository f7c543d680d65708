package document

import "github.com/garyjia/rental-invoice/internal/domain/entity"

// The functions below are the structural updates behind Store. Each one
// returns a new Invoice and never modifies its argument. The boolean result,
// where present, is false when the update was a no-op.

// ApplyField sets a free-text field on the invoice root
func ApplyField(inv entity.Invoice, field InvoiceField, value string) (entity.Invoice, bool) {
	out := inv.Clone()
	switch field {
	case FieldInvoiceNumber:
		out.InvoiceNumber = value
	case FieldInvoiceDate:
		out.InvoiceDate = value
	case FieldDueDate:
		out.DueDate = value
	case FieldNotes:
		out.Notes = value
	default:
		return inv, false
	}
	return out, true
}

// ApplyTaxRate stores the parsed tax percentage, 0 when raw is not a number
func ApplyTaxRate(inv entity.Invoice, raw string) entity.Invoice {
	out := inv.Clone()
	out.TaxRate = ParseNumber(raw)
	return out
}

// ApplyParty replaces one contact field of the company or customer record
func ApplyParty(inv entity.Invoice, party Party, field PartyField, value string) (entity.Invoice, bool) {
	if !field.AppliesTo(party) {
		return inv, false
	}

	out := inv.Clone()
	switch party {
	case PartyCompany:
		setCompanyField(&out.Company, field, value)
	case PartyCustomer:
		setCustomerField(&out.Customer, field, value)
	}
	return out, true
}

func setCompanyField(c *entity.Company, field PartyField, value string) {
	switch field {
	case PartyName:
		c.Name = value
	case PartyAddress:
		c.Address = value
	case PartyPhone:
		c.Phone = value
	case PartyEmail:
		c.Email = value
	case PartyWebsite:
		c.Website = value
	}
}

func setCustomerField(c *entity.Customer, field PartyField, value string) {
	switch field {
	case PartyName:
		c.Name = value
	case PartyAddress:
		c.Address = value
	case PartyPhone:
		c.Phone = value
	case PartyEmail:
		c.Email = value
	}
}

// ApplyLogo sets the company logo; an empty string removes it
func ApplyLogo(inv entity.Invoice, imageData string) entity.Invoice {
	out := inv.Clone()
	out.Company.Logo = imageData
	return out
}

// ApplyItem updates one field of the item with the given id.
// Description is stored verbatim, quantity and rate go through ParseNumber.
func ApplyItem(inv entity.Invoice, id string, field ItemField, value string) (entity.Invoice, bool) {
	idx := inv.ItemIndex(id)
	if idx < 0 || !field.IsValid() {
		return inv, false
	}

	out := inv.Clone()
	item := &out.Items[idx]
	switch field {
	case ItemDescription:
		item.Description = value
	case ItemQuantity:
		item.Quantity = ParseNumber(value)
	case ItemRate:
		item.Rate = ParseNumber(value)
	}
	return out, true
}

// AppendItem adds item at the end of the list
func AppendItem(inv entity.Invoice, item entity.LineItem) entity.Invoice {
	out := inv.Clone()
	out.Items = append(out.Items, item)
	return out
}

// DeleteItem removes the item with the given id unless it is the only one left
func DeleteItem(inv entity.Invoice, id string) (entity.Invoice, bool) {
	idx := inv.ItemIndex(id)
	if idx < 0 || len(inv.Items) <= 1 {
		return inv, false
	}

	out := inv.Clone()
	out.Items = append(out.Items[:idx], out.Items[idx+1:]...)
	return out, true
}
