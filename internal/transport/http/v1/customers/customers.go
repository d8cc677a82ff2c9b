// Package customers serves customer CRUD.
package customers

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/models/customer"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	ListCustomers(ctx context.Context, filter customer.QueryCustomersModel) ([]customer.Customer, error)
	GetCustomer(ctx context.Context, id int64) (customer.Customer, error)
	CreateCustomer(ctx context.Context, in customer.CustomerInput) (customer.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, in customer.CustomerInput) (customer.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type queryCustomersRequest struct {
	Ids    []int64 `schema:"ids"`
	Limit  int     `schema:"limit"`
	Offset int     `schema:"offset"`
}

// List returns customers.
//
//	@Summary	List customers
//	@Tags		customers
//	@Produce	json
//	@Param		ids		query		[]int	false	"IDs"
//	@Param		limit	query		int		false	"Page size"
//	@Param		offset	query		int		false	"Page offset"
//	@Success	200		{array}		customer.Customer
//	@Router		/customers [get]
func List(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryCustomersRequest{}
	if err := decode.Query(r, query); err != nil {
		respond.Error(w, r, err)

		return
	}

	items, err := service.ListCustomers(r.Context(), customer.QueryCustomersModel{
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

// Get returns one customer.
//
//	@Summary	Get a customer
//	@Tags		customers
//	@Produce	json
//	@Param		id	path		int	true	"ID"
//	@Success	200	{object}	customer.Customer
//	@Failure	404	{object}	respond.ErrorBody
//	@Router		/customers/{id} [get]
func Get(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	item, err := service.GetCustomer(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, item)
}

// Create adds a customer.
//
//	@Summary	Create a customer
//	@Tags		customers
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		customer	body		customer.CustomerInput	true	"Customer"
//	@Success	201	{object}	customer.Customer
//	@Failure	400	{object}	respond.ErrorBody
//	@Router		/customers [post]
func Create(w http.ResponseWriter, r *http.Request, service service) {
	var in customer.CustomerInput
	if err := decode.Body(r, &in); err != nil {
		respond.Error(w, r, err)

		return
	}

	created, err := service.CreateCustomer(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// Update overwrites a customer.
//
//	@Summary	Update a customer
//	@Tags		customers
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		id	path		int			true	"ID"
//	@Param		customer	body		customer.CustomerInput	true	"Customer"
//	@Success	200	{object}	customer.Customer
//	@Failure	400	{object}	respond.ErrorBody
//	@Failure	404	{object}	respond.ErrorBody
//	@Router		/customers/{id} [put]
func Update(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	var in customer.CustomerInput
	if err := decode.Body(r, &in); err != nil {
		respond.Error(w, r, err)

		return
	}

	updated, err := service.UpdateCustomer(r.Context(), id, in)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// Delete removes a customer without orders. A missing customer is not an error.
//
//	@Summary	Delete a customer
//	@Tags		customers
//	@Param		id	path	int	true	"ID"
//	@Success	204
//	@Failure	409	{object}	respond.ErrorBody
//	@Router		/customers/{id} [delete]
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	if err := service.DeleteCustomer(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}
