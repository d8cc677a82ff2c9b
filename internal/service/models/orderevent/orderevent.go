package orderevent

import (
	"time"

	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
)

// Kind names the mutation that produced an event.
type Kind string

const (
	KindCreated Kind = "order.created"
	KindUpdated Kind = "order.updated"
	KindDeleted Kind = "order.deleted"
)

// Event is published after an order mutation has been committed.
type Event struct {
	Kind       Kind         `json:"kind"`
	OrderID    int64        `json:"orderId"`
	CustomerID int64        `json:"customerId"`
	Status     order.Status `json:"status,omitempty"`
	TotalCents money.Cents  `json:"totalCents"`
	LineCount  int          `json:"lineCount"`
	Version    int64        `json:"version"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// FromOrder builds an event describing o.
func FromOrder(kind Kind, o order.Order, at time.Time) Event {
	return Event{
		Kind:       kind,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		TotalCents: o.TotalCents,
		LineCount:  len(o.OrderItems),
		Version:    o.Version,
		OccurredAt: at,
	}
}
