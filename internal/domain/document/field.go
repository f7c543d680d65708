package document

// InvoiceField names a free-text scalar field on the invoice root
type InvoiceField string

const (
	FieldInvoiceNumber InvoiceField = "invoiceNumber"
	FieldInvoiceDate   InvoiceField = "invoiceDate"
	FieldDueDate       InvoiceField = "dueDate"
	FieldNotes         InvoiceField = "notes"
)

var validInvoiceFields = map[InvoiceField]bool{
	FieldInvoiceNumber: true,
	FieldInvoiceDate:   true,
	FieldDueDate:       true,
	FieldNotes:         true,
}

// String returns the string representation of the field
func (f InvoiceField) String() string {
	return string(f)
}

// IsValid returns true if the field is an updatable invoice field
func (f InvoiceField) IsValid() bool {
	return validInvoiceFields[f]
}

// ParseInvoiceField maps a wire field name onto InvoiceField
func ParseInvoiceField(name string) (InvoiceField, bool) {
	f := InvoiceField(name)
	return f, f.IsValid()
}

// Party selects which contact record an update targets
type Party string

const (
	PartyCompany  Party = "company"
	PartyCustomer Party = "customer"
)

// String returns the string representation of the party
func (p Party) String() string {
	return string(p)
}

// IsValid returns true if the party is company or customer
func (p Party) IsValid() bool {
	return p == PartyCompany || p == PartyCustomer
}

// ParseParty maps a wire party name onto Party
func ParseParty(name string) (Party, bool) {
	p := Party(name)
	return p, p.IsValid()
}

// PartyField names a contact field on a party record
type PartyField string

const (
	PartyName    PartyField = "name"
	PartyAddress PartyField = "address"
	PartyPhone   PartyField = "phone"
	PartyEmail   PartyField = "email"
	PartyWebsite PartyField = "website" // company only
)

var validPartyFields = map[PartyField]bool{
	PartyName:    true,
	PartyAddress: true,
	PartyPhone:   true,
	PartyEmail:   true,
	PartyWebsite: true,
}

// String returns the string representation of the field
func (f PartyField) String() string {
	return string(f)
}

// IsValid returns true if the field exists on at least one party
func (f PartyField) IsValid() bool {
	return validPartyFields[f]
}

// AppliesTo reports whether the field exists on the given party
func (f PartyField) AppliesTo(p Party) bool {
	if f == PartyWebsite {
		return p == PartyCompany
	}
	return f.IsValid() && p.IsValid()
}

// ParsePartyField maps a wire field name onto PartyField
func ParsePartyField(name string) (PartyField, bool) {
	f := PartyField(name)
	return f, f.IsValid()
}

// ItemField names an editable field on a line item
type ItemField string

const (
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemRate        ItemField = "rate"
)

// String returns the string representation of the field
func (f ItemField) String() string {
	return string(f)
}

// IsValid returns true if the field is an editable line item field
func (f ItemField) IsValid() bool {
	switch f {
	case ItemDescription, ItemQuantity, ItemRate:
		return true
	}
	return false
}

// IsNumeric returns true for fields stored as numbers
func (f ItemField) IsNumeric() bool {
	return f == ItemQuantity || f == ItemRate
}

// ParseItemField maps a wire field name onto ItemField
func ParseItemField(name string) (ItemField, bool) {
	f := ItemField(name)
	return f, f.IsValid()
}
