package order

import (
	"errors"
	"time"

	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// DefaultStatus is applied by the presentation layer when a new order carries no status.
const DefaultStatus = StatusPending

var ErrInvalidStatus = errors.New("invalid order status")

// Statuses lists every accepted status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if s == st.String() {
			return st, nil
		}
	}

	return "", ErrInvalidStatus
}

// Order represents a customer order together with its line items.
type Order struct {
	ID           int64                 `json:"id"`
	CustomerID   int64                 `json:"customerId"`
	CustomerName string                `json:"customerName,omitempty"`
	OrderDate    time.Time             `json:"orderDate"`
	Status       Status                `json:"status"`
	TotalCents   money.Cents           `json:"totalCents"`
	Version      int64                 `json:"version"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	OrderItems   []orderitem.OrderItem `json:"orderItems"`
}

// Total sums unit price times quantity over the order's current lines.
func (o *Order) Total() money.Cents {
	var total money.Cents
	for _, item := range o.OrderItems {
		total += item.LineTotal()
	}

	return total
}
