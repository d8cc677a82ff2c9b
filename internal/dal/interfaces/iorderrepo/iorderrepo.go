package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/store/internal/service/models/order"
)

// IOrderRepository is an interface for the order repository.
type IOrderRepository interface {
	// Insert stores o without its items and returns it with ID and Version set.
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	// Get returns the order without items, or errs.ErrNotFound.
	Get(ctx context.Context, id int64) (order.Order, error)
	// UpdateVersioned writes status and total only if the stored version still
	// equals expectedVersion, otherwise it returns errs.ErrConflict.
	UpdateVersioned(ctx context.Context, o order.Order, expectedVersion int64) (order.Order, error)
	// Delete removes the order row and reports whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Count(ctx context.Context) (int64, error)
}
