package orderitem

import (
	"time"

	"github.com/corray333/backend-labs/store/internal/service/models/money"
)

// OrderItem represents one line of an order. The unit price is the product's
// price at the time the line was written.
type OrderItem struct {
	ID             int64       `json:"id"`
	OrderID        int64       `json:"orderId"`
	ProductID      int64       `json:"productId"`
	ProductName    string      `json:"productName,omitempty"`
	Quantity       int         `json:"quantity"`
	UnitPriceCents money.Cents `json:"unitPriceCents"`
	LineTotalCents money.Cents `json:"lineTotalCents"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// LineTotal returns unit price times quantity.
func (oi OrderItem) LineTotal() money.Cents {
	return oi.UnitPriceCents.Times(oi.Quantity)
}
