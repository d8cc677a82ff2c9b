package updateorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/converters"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	UpdateOrder(ctx context.Context, orderID int64, in order.OrderInput) (order.Order, error)
}

// UpdateOrder replaces the status and lines of an order. A non-zero version
// must match the stored one.
//
//	@Summary	Update an order
//	@Tags		orders
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		id		path		int						true	"Order ID"
//	@Param		order	body		converters.OrderRequest	true	"Order"
//	@Success	200		{object}	converters.OrderResponse
//	@Failure	400		{object}	respond.ErrorBody
//	@Failure	404		{object}	respond.ErrorBody
//	@Failure	409		{object}	respond.ErrorBody
//	@Failure	422		{object}	respond.ErrorBody
//	@Router		/orders/{id} [put]
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	var req converters.OrderRequest
	if err := decode.Body(r, &req); err != nil {
		respond.Error(w, r, err)

		return
	}

	updated, err := service.UpdateOrder(r.Context(), id, converters.OrderInputFromRequest(req, false))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.OrderToResponse(updated))
}
