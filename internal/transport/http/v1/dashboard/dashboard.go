package dashboard

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/services/dashboardsvc"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/respond"
)

type service interface {
	Summary(ctx context.Context) (dashboardsvc.Summary, error)
}

// Summary returns record counts per entity.
//
//	@Summary	Dashboard counts
//	@Tags		dashboard
//	@Produce	json
//	@Success	200	{object}	dashboardsvc.Summary
//	@Router		/dashboard [get]
func Summary(w http.ResponseWriter, r *http.Request, service service) {
	summary, err := service.Summary(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, summary)
}
