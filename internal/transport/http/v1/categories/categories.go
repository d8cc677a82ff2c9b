// Package categories serves category CRUD.
package categories

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/models/category"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	ListCategories(ctx context.Context, filter category.QueryCategoriesModel) ([]category.Category, error)
	GetCategory(ctx context.Context, id int64) (category.Category, error)
	CreateCategory(ctx context.Context, in category.CategoryInput) (category.Category, error)
	UpdateCategory(ctx context.Context, id int64, in category.CategoryInput) (category.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type queryCategoriesRequest struct {
	Ids    []int64 `schema:"ids"`
	Limit  int     `schema:"limit"`
	Offset int     `schema:"offset"`
}

// List returns categories ordered by name.
//
//	@Summary	List categories
//	@Tags		categories
//	@Produce	json
//	@Param		ids		query		[]int	false	"IDs"
//	@Param		limit	query		int		false	"Page size"
//	@Param		offset	query		int		false	"Page offset"
//	@Success	200		{array}		category.Category
//	@Router		/categories [get]
func List(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryCategoriesRequest{}
	if err := decode.Query(r, query); err != nil {
		respond.Error(w, r, err)

		return
	}

	items, err := service.ListCategories(r.Context(), category.QueryCategoriesModel{
		Ids:    query.Ids,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, items)
}

// Get returns one category.
//
//	@Summary	Get a category
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		int	true	"ID"
//	@Success	200	{object}	category.Category
//	@Failure	404	{object}	respond.ErrorBody
//	@Router		/categories/{id} [get]
func Get(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	item, err := service.GetCategory(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, item)
}

// Create adds a category.
//
//	@Summary	Create a category
//	@Tags		categories
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		category	body		category.CategoryInput	true	"Category"
//	@Success	201	{object}	category.Category
//	@Failure	400	{object}	respond.ErrorBody
//	@Router		/categories [post]
func Create(w http.ResponseWriter, r *http.Request, service service) {
	var in category.CategoryInput
	if err := decode.Body(r, &in); err != nil {
		respond.Error(w, r, err)

		return
	}

	created, err := service.CreateCategory(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// Update overwrites a category.
//
//	@Summary	Update a category
//	@Tags		categories
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		id	path		int			true	"ID"
//	@Param		category	body		category.CategoryInput	true	"Category"
//	@Success	200	{object}	category.Category
//	@Failure	400	{object}	respond.ErrorBody
//	@Failure	404	{object}	respond.ErrorBody
//	@Router		/categories/{id} [put]
func Update(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	var in category.CategoryInput
	if err := decode.Body(r, &in); err != nil {
		respond.Error(w, r, err)

		return
	}

	updated, err := service.UpdateCategory(r.Context(), id, in)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// Delete removes a category that nothing references.
//
//	@Summary	Delete a category
//	@Tags		categories
//	@Param		id	path	int	true	"ID"
//	@Success	204
//	@Failure	409	{object}	respond.ErrorBody
//	@Router		/categories/{id} [delete]
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	if err := service.DeleteCategory(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}
