package listorders

import (
	"context"
	"fmt"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/converters"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Ids         []int64  `schema:"ids"`
	CustomerIds []int64  `schema:"customerIds"`
	Statuses    []string `schema:"status"`
	Limit       int      `schema:"limit"`
	Offset      int      `schema:"offset"`
}

func (q *queryOrdersRequest) ToModel() (order.QueryOrdersModel, error) {
	statuses := make([]order.Status, 0, len(q.Statuses))
	for _, raw := range q.Statuses {
		st, err := order.ParseStatus(raw)
		if err != nil {
			return order.QueryOrdersModel{}, fmt.Errorf("%w: status %q: %v", decode.ErrBadRequest, raw, err)
		}
		statuses = append(statuses, st)
	}

	return order.QueryOrdersModel{
		Ids:         q.Ids,
		CustomerIds: q.CustomerIds,
		Statuses:    statuses,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}, nil
}

// ListOrders returns orders with their lines, newest id last.
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Param		ids			query		[]int		false	"Order IDs"
//	@Param		customerIds	query		[]int		false	"Customer IDs"
//	@Param		status		query		[]string	false	"Statuses"
//	@Param		limit		query		int			false	"Page size"
//	@Param		offset		query		int			false	"Page offset"
//	@Success	200			{array}		converters.OrderResponse
//	@Failure	400			{object}	respond.ErrorBody
//	@Router		/orders [get]
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryOrdersRequest{}
	if err := decode.Query(r, query); err != nil {
		respond.Error(w, r, err)

		return
	}

	filter, err := query.ToModel()
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	orders, err := service.ListOrders(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.OrdersToResponse(orders))
}
