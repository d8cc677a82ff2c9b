package ibrandrepo

import (
	"context"

	"github.com/corray333/backend-labs/store/internal/service/models/brand"
)

// IBrandRepository is an interface for the brand repository.
type IBrandRepository interface {
	Insert(ctx context.Context, b brand.Brand) (brand.Brand, error)
	Get(ctx context.Context, id int64) (brand.Brand, error)
	Update(ctx context.Context, b brand.Brand) (brand.Brand, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Query(ctx context.Context, filter *brand.QueryBrandsModel) ([]brand.Brand, error)
	Count(ctx context.Context) (int64, error)
}
