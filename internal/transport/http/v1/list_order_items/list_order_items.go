package listorderitems

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/converters"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	ListOrderItems(ctx context.Context, filter orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error)
}

type queryOrderItemsRequest struct {
	Ids        []int64 `schema:"ids"`
	OrderIds   []int64 `schema:"orderIds"`
	ProductIds []int64 `schema:"productIds"`
	Limit      int     `schema:"limit"`
	Offset     int     `schema:"offset"`
}

func (q *queryOrderItemsRequest) ToModel() orderitem.QueryOrderItemsModel {
	return orderitem.QueryOrderItemsModel{
		Ids:        q.Ids,
		OrderIds:   q.OrderIds,
		ProductIds: q.ProductIds,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
}

// ListOrderItems returns order lines with product names.
//
//	@Summary	List order lines
//	@Tags		orders
//	@Produce	json
//	@Param		orderIds	query		[]int	false	"Order IDs"
//	@Param		productIds	query		[]int	false	"Product IDs"
//	@Param		limit		query		int		false	"Page size"
//	@Param		offset		query		int		false	"Page offset"
//	@Success	200			{array}		converters.OrderItemResponse
//	@Router		/order-items [get]
func ListOrderItems(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryOrderItemsRequest{}
	if err := decode.Query(r, query); err != nil {
		respond.Error(w, r, err)

		return
	}

	items, err := service.ListOrderItems(r.Context(), query.ToModel())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.OrderItemsToResponse(items))
}
