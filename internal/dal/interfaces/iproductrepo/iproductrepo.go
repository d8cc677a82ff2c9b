package iproductrepo

import (
	"context"

	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/product"
)

// IProductRepository is an interface for the product repository.
type IProductRepository interface {
	Insert(ctx context.Context, p product.Product) (product.Product, error)
	Get(ctx context.Context, id int64) (product.Product, error)
	Update(ctx context.Context, p product.Product) (product.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	Count(ctx context.Context) (int64, error)
	// PricesByIDs resolves current unit prices for ids in one lookup.
	// Ids that do not exist are simply absent from the result.
	PricesByIDs(ctx context.Context, ids []int64) (map[int64]money.Cents, error)
}
