package order

import (
	"testing"

	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, st := range Statuses() {
		got, err := ParseStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseStatus("pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrder_TotalKeepsDuplicateLines(t *testing.T) {
	o := Order{OrderItems: []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2, UnitPriceCents: 1000},
		{ProductID: 1, Quantity: 1, UnitPriceCents: 1000},
		{ProductID: 2, Quantity: 3, UnitPriceCents: 250},
	}}

	assert.Equal(t, money.Cents(3750), o.Total())
}

func TestOrderInput_Lines(t *testing.T) {
	in := OrderInput{ProductIDs: []int64{5, 5, 9}, Quantities: []int{1, 4, 2}}

	assert.Equal(t, []Line{
		{ProductID: 5, Quantity: 1},
		{ProductID: 5, Quantity: 4},
		{ProductID: 9, Quantity: 2},
	}, in.Lines())
}
