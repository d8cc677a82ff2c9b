package dashboardsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounts struct {
	categories, brands, products, customers, orders int64
	err                                             error
}

func (s stubCounts) CountCategories(context.Context) (int64, error) { return s.categories, nil }
func (s stubCounts) CountBrands(context.Context) (int64, error)     { return s.brands, nil }
func (s stubCounts) CountProducts(context.Context) (int64, error)   { return s.products, nil }
func (s stubCounts) CountCustomers(context.Context) (int64, error)  { return s.customers, nil }
func (s stubCounts) CountOrders(context.Context) (int64, error)     { return s.orders, s.err }

func TestSummary(t *testing.T) {
	stub := stubCounts{categories: 1, brands: 2, products: 3, customers: 4, orders: 5}
	svc := NewDashboardService(stub, stub, stub)

	got, err := svc.Summary(t.Context())
	require.NoError(t, err)
	assert.Equal(t, Summary{Categories: 1, Brands: 2, Products: 3, Customers: 4, Orders: 5}, got)
}

func TestSummary_PropagatesError(t *testing.T) {
	stub := stubCounts{err: errors.New("db down")}
	svc := NewDashboardService(stub, stub, stub)

	_, err := svc.Summary(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count orders")
}
