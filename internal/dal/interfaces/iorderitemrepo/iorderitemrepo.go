package iorderitemrepo

import (
	"context"

	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for the order item repository.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	Query(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
	// DeleteByOrderIDs removes every line of the given orders and returns the number removed.
	DeleteByOrderIDs(ctx context.Context, orderIDs []int64) (int64, error)
}
