package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garyjia/rental-invoice/internal/domain/entity"
)

func TestOperationsDoNotModifyInput(t *testing.T) {
	inv := entity.Invoice{
		Notes: "orig",
		Items: []entity.LineItem{{ID: "a", Quantity: 1}, {ID: "b", Quantity: 2}},
	}
	original := inv.Clone()

	ApplyField(inv, FieldNotes, "changed")
	ApplyTaxRate(inv, "9")
	ApplyParty(inv, PartyCompany, PartyName, "X")
	ApplyLogo(inv, "data:image/png;base64,AA==")
	ApplyItem(inv, "a", ItemQuantity, "7")
	AppendItem(inv, entity.LineItem{ID: "c"})
	DeleteItem(inv, "a")

	assert.Equal(t, original, inv)
}

func TestDeleteItem(t *testing.T) {
	inv := entity.Invoice{Items: []entity.LineItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	out, ok := DeleteItem(inv, "b")
	assert.True(t, ok)
	assert.Equal(t, []entity.LineItem{{ID: "a"}, {ID: "c"}}, out.Items)

	single := entity.Invoice{Items: []entity.LineItem{{ID: "only"}}}
	out, ok = DeleteItem(single, "only")
	assert.False(t, ok)
	assert.Equal(t, single, out)
}
