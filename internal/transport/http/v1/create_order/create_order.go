package createorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/converters"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, in order.OrderInput) (order.Order, error)
}

// CreateOrder handles the create order request.
//
//	@Summary	Create an order
//	@Tags		orders
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		order	body		converters.OrderRequest	true	"Order; status defaults to Pending"
//	@Success	201		{object}	converters.OrderResponse
//	@Failure	400		{object}	respond.ErrorBody
//	@Failure	422		{object}	respond.ErrorBody
//	@Router		/orders [post]
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req converters.OrderRequest
	if err := decode.Body(r, &req); err != nil {
		respond.Error(w, r, err)

		return
	}

	created, err := service.CreateOrder(r.Context(), converters.OrderInputFromRequest(req, true))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, converters.OrderToResponse(created))
}
