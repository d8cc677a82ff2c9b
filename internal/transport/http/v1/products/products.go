// Package products serves product CRUD. Prices are accepted as decimal strings
// or as cents and returned in both forms.
package products

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/product"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/converters"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	ListProducts(ctx context.Context, filter product.QueryProductsModel) ([]product.Product, error)
	GetProduct(ctx context.Context, id int64) (product.Product, error)
	CreateProduct(ctx context.Context, in product.ProductInput) (product.Product, error)
	UpdateProduct(ctx context.Context, id int64, in product.ProductInput) (product.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ValidateProduct(in product.ProductInput) error
}

type queryProductsRequest struct {
	Ids         []int64 `schema:"ids"`
	BrandIds    []int64 `schema:"brandIds"`
	CategoryIds []int64 `schema:"categoryIds"`
	Limit       int     `schema:"limit"`
	Offset      int     `schema:"offset"`
}

func (q *queryProductsRequest) ToModel() product.QueryProductsModel {
	return product.QueryProductsModel{
		Ids:         q.Ids,
		BrandIds:    q.BrandIds,
		CategoryIds: q.CategoryIds,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

// List returns products with brand and category names.
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Param		ids			query	[]int	false	"Product IDs"
//	@Param		brandIds	query	[]int	false	"Brand IDs"
//	@Param		categoryIds	query	[]int	false	"Category IDs"
//	@Param		limit		query	int		false	"Page size"
//	@Param		offset		query	int		false	"Page offset"
//	@Success	200			{array}	converters.ProductResponse
//	@Router		/products [get]
func List(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryProductsRequest{}
	if err := decode.Query(r, query); err != nil {
		respond.Error(w, r, err)

		return
	}

	products, err := service.ListProducts(r.Context(), query.ToModel())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.ProductsToResponse(products))
}

// Get returns one product.
//
//	@Summary	Get a product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	converters.ProductResponse
//	@Failure	404	{object}	respond.ErrorBody
//	@Router		/products/{id} [get]
func Get(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	p, err := service.GetProduct(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.ProductToResponse(p))
}

// Create adds a product.
//
//	@Summary	Create a product
//	@Tags		products
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		product	body		converters.ProductRequest	true	"Product"
//	@Success	201		{object}	converters.ProductResponse
//	@Failure	400		{object}	respond.ErrorBody
//	@Failure	422		{object}	respond.ErrorBody
//	@Router		/products [post]
func Create(w http.ResponseWriter, r *http.Request, service service) {
	in, err := decodeInput(r, service)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	created, err := service.CreateProduct(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, converters.ProductToResponse(created))
}

// Update overwrites a product. Existing order lines keep their prices.
//
//	@Summary	Update a product
//	@Tags		products
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		id		path		int							true	"Product ID"
//	@Param		product	body		converters.ProductRequest	true	"Product"
//	@Success	200		{object}	converters.ProductResponse
//	@Failure	400		{object}	respond.ErrorBody
//	@Failure	404		{object}	respond.ErrorBody
//	@Failure	422		{object}	respond.ErrorBody
//	@Router		/products/{id} [put]
func Update(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	in, err := decodeInput(r, service)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	updated, err := service.UpdateProduct(r.Context(), id, in)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.ProductToResponse(updated))
}

// Delete removes a product that no order line uses.
//
//	@Summary	Delete a product
//	@Tags		products
//	@Param		id	path	int	true	"Product ID"
//	@Success	204
//	@Failure	404	{object}	respond.ErrorBody
//	@Failure	409	{object}	respond.ErrorBody
//	@Router		/products/{id} [delete]
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	if err := service.DeleteProduct(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}

// decodeInput reads the body and resolves the price. A price problem is
// reported together with every other field violation.
func decodeInput(r *http.Request, service service) (product.ProductInput, error) {
	var req converters.ProductRequest
	if err := decode.Body(r, &req); err != nil {
		return product.ProductInput{}, err
	}

	in, err := converters.ProductInputFromRequest(req)
	if err == nil {
		return in, nil
	}

	ve, ok := errs.AsValidation(err)
	if !ok {
		return product.ProductInput{}, err
	}
	if validateErr := service.ValidateProduct(in); validateErr != nil && !ve.Merge(validateErr) {
		return product.ProductInput{}, validateErr
	}

	return product.ProductInput{}, ve
}
