package getorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/converters"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	GetOrder(ctx context.Context, orderID int64) (order.Order, error)
}

// GetOrder returns one order with its lines.
//
//	@Summary	Get an order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	converters.OrderResponse
//	@Failure	404	{object}	respond.ErrorBody
//	@Router		/orders/{id} [get]
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.OrderToResponse(o))
}
