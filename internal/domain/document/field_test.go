package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInvoiceField(t *testing.T) {
	for _, name := range []string{"invoiceNumber", "invoiceDate", "dueDate", "notes"} {
		f, ok := ParseInvoiceField(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, f.String())
	}

	_, ok := ParseInvoiceField("taxRate")
	assert.False(t, ok, "tax rate has its own operation")
	_, ok = ParseInvoiceField("items")
	assert.False(t, ok)
}

func TestPartyField_AppliesTo(t *testing.T) {
	tests := []struct {
		field PartyField
		party Party
		want  bool
	}{
		{PartyName, PartyCompany, true},
		{PartyName, PartyCustomer, true},
		{PartyEmail, PartyCustomer, true},
		{PartyWebsite, PartyCompany, true},
		{PartyWebsite, PartyCustomer, false},
		{PartyField("logo"), PartyCompany, false},
		{PartyName, Party("vendor"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.party)+"/"+string(tt.field), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.AppliesTo(tt.party))
		})
	}
}

func TestParseItemField(t *testing.T) {
	f, ok := ParseItemField("quantity")
	assert.True(t, ok)
	assert.True(t, f.IsNumeric())

	f, ok = ParseItemField("description")
	assert.True(t, ok)
	assert.False(t, f.IsNumeric())

	_, ok = ParseItemField("id")
	assert.False(t, ok)
}

func TestParseParty(t *testing.T) {
	_, ok := ParseParty("company")
	assert.True(t, ok)
	_, ok = ParseParty("customer")
	assert.True(t, ok)
	_, ok = ParseParty("supplier")
	assert.False(t, ok)
}
