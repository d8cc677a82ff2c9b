package deleteorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	DeleteOrder(ctx context.Context, orderID int64) error
}

// DeleteOrder removes an order and its lines. Deleting a missing order succeeds.
//
//	@Summary	Delete an order
//	@Tags		orders
//	@Param		id	path	int	true	"Order ID"
//	@Success	204
//	@Failure	400	{object}	respond.ErrorBody
//	@Router		/orders/{id} [delete]
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := decode.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	if err := service.DeleteOrder(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}
