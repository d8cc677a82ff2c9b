package icategoryrepo

import (
	"context"

	"github.com/corray333/backend-labs/store/internal/service/models/category"
)

// ICategoryRepository is an interface for the category repository.
type ICategoryRepository interface {
	Insert(ctx context.Context, c category.Category) (category.Category, error)
	Get(ctx context.Context, id int64) (category.Category, error)
	Update(ctx context.Context, c category.Category) (category.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Query(ctx context.Context, filter *category.QueryCategoriesModel) ([]category.Category, error)
	Count(ctx context.Context) (int64, error)
}
