package dashboardsvc

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

// Summary holds the number of stored records per entity.
type Summary struct {
	Categories int64 `json:"categories"`
	Brands     int64 `json:"brands"`
	Products   int64 `json:"products"`
	Customers  int64 `json:"customers"`
	Orders     int64 `json:"orders"`
}

type catalogCounter interface {
	CountCategories(ctx context.Context) (int64, error)
	CountBrands(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
}

type customerCounter interface {
	CountCustomers(ctx context.Context) (int64, error)
}

type orderCounter interface {
	CountOrders(ctx context.Context) (int64, error)
}

// DashboardService aggregates counts from the other services.
type DashboardService struct {
	catalog   catalogCounter
	customers customerCounter
	orders    orderCounter
}

func NewDashboardService(catalog catalogCounter, customers customerCounter, orders orderCounter) *DashboardService {
	return &DashboardService{
		catalog:   catalog,
		customers: customers,
		orders:    orders,
	}
}

// Summary counts every entity concurrently.
func (s *DashboardService) Summary(ctx context.Context) (Summary, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "DashboardService.Summary")
	defer span.End()

	var sum Summary
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	count := func(name string, dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", name, err)
			}
			*dst = n

			return nil
		})
	}

	count("categories", &sum.Categories, s.catalog.CountCategories)
	count("brands", &sum.Brands, s.catalog.CountBrands)
	count("products", &sum.Products, s.catalog.CountProducts)
	count("customers", &sum.Customers, s.customers.CountCustomers)
	count("orders", &sum.Orders, s.orders.CountOrders)

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return sum, nil
}
