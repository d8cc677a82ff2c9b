// Package brands serves the brands endpoints.
package brands

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/models/brand"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	ListBrands(ctx context.Context, filter brand.QueryBrandsModel) ([]brand.Brand, error)
	GetBrand(ctx context.Context, id int64) (brand.Brand, error)
	CreateBrand(ctx context.Context, in brand.BrandInput) (brand.Brand, error)
	UpdateBrand(ctx context.Context, id int64, in brand.BrandInput) (brand.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error
}

type queryBrandsRequest struct {
	Ids    []int64 `schema:"ids"`
	Limit  int     `schema:"limit"`
	Offset int     `schema:"offset"`
}

// List returns brands ordered by name.
//
//	@Summary	List brands
//	@Tags		brands
//	@Produce	json
//	@Param		ids		query		[]int	false	"IDs"
//	@Param		limit	query		int		false	"Page size"
//	@Param		offset	query		int		false	"Page offset"
//	@Success	200		{array}		brand.Brand
//	@Router		/brands [get]
func List(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryBrandsRequest{}
	if err := decode.Query(r, query); err != nil {
		respond.Error(w, r, err)

		return
	}

	items, err := service.ListBrands(r.Context(), brand.QueryBrandsModel{
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

// Get returns one brand.
//
//	@Summary	Get a brand
//	@Tags		brands
//	@Produce	json
//	@Param		id	path		int	true	"ID"
//	@Success	200	{object}	brand.Brand
//	@Failure	404	{object}	respond.ErrorBody
//	@Router		/brands/{id} [get]
func Get(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	item, err := service.GetBrand(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, item)
}

// Create adds a brand.
//
//	@Summary	Create a brand
//	@Tags		brands
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		brand	body		brand.BrandInput	true	"Brand"
//	@Success	201	{object}	brand.Brand
//	@Failure	400	{object}	respond.ErrorBody
//	@Router		/brands [post]
func Create(w http.ResponseWriter, r *http.Request, service service) {
	var in brand.BrandInput
	if err := decode.Body(r, &in); err != nil {
		respond.Error(w, r, err)

		return
	}

	created, err := service.CreateBrand(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// Update overwrites a brand.
//
//	@Summary	Update a brand
//	@Tags		brands
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		id	path		int			true	"ID"
//	@Param		brand	body		brand.BrandInput	true	"Brand"
//	@Success	200	{object}	brand.Brand
//	@Failure	400	{object}	respond.ErrorBody
//	@Failure	404	{object}	respond.ErrorBody
//	@Router		/brands/{id} [put]
func Update(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	var in brand.BrandInput
	if err := decode.Body(r, &in); err != nil {
		respond.Error(w, r, err)

		return
	}

	updated, err := service.UpdateBrand(r.Context(), id, in)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// Delete removes a brand that nothing references.
//
//	@Summary	Delete a brand
//	@Tags		brands
//	@Param		id	path	int	true	"ID"
//	@Success	204
//	@Failure	409	{object}	respond.ErrorBody
//	@Router		/brands/{id} [delete]
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	if err := service.DeleteBrand(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}
