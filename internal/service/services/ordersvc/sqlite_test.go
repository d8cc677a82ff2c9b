package ordersvc

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/corray333/backend-labs/store/internal/dal/sqlite"
	"github.com/corray333/backend-labs/store/internal/dal/uow"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/brand"
	"github.com/corray333/backend-labs/store/internal/service/models/category"
	"github.com/corray333/backend-labs/store/internal/service/models/customer"
	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/store/internal/service/models/product"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seeded struct {
	customerID int64
	productA   int64
	productB   int64
}

func openSQLite(t *testing.T) (*sqlx.DB, seeded) {
	t.Helper()

	client, err := sqlite.NewClient(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx := t.Context()
	now := time.Now().UTC()
	work := uow.NewUnitOfWork(client.DB())

	b, err := work.BrandRepository().Insert(ctx, brand.Brand{Name: "Acme", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	c, err := work.CategoryRepository().Insert(ctx, category.Category{Name: "Shirts", IsActive: true, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	newProduct := func(name string, price money.Cents) int64 {
		p, err := work.ProductRepository().Insert(ctx, product.Product{
			Name:       name,
			PriceCents: price,
			BrandID:    b.ID,
			CategoryID: c.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		require.NoError(t, err)

		return p.ID
	}

	cust, err := work.CustomerRepository().Insert(ctx, customer.Customer{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)

	return client.DB(), seeded{
		customerID: cust.ID,
		productA:   newProduct("Tee", 1000),
		productB:   newProduct("Cap", 500),
	}
}

func TestSQLite_OrderLifecycle(t *testing.T) {
	db, s := openSQLite(t)
	svc := MustNewOrderService(WithDB(db))
	ctx := t.Context()

	created, err := svc.CreateOrder(ctx, order.OrderInput{
		CustomerID: s.customerID,
		Status:     order.StatusPending,
		ProductIDs: []int64{s.productA, s.productB},
		Quantities: []int{2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(3500), created.TotalCents)
	assert.Equal(t, "Ann Lee", created.CustomerName)
	require.Len(t, created.OrderItems, 2)
	assert.Equal(t, "Tee", created.OrderItems[0].ProductName)
	assert.Equal(t, "Cap", created.OrderItems[1].ProductName)

	updated, err := svc.UpdateOrder(ctx, created.ID, order.OrderInput{
		Status:     order.StatusProcessing,
		ProductIDs: []int64{s.productA},
		Quantities: []int{2},
		Version:    created.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(2000), updated.TotalCents)
	assert.Equal(t, order.StatusProcessing, updated.Status)
	assert.Equal(t, created.Version+1, updated.Version)
	require.Len(t, updated.OrderItems, 1)

	items, err := svc.ListOrderItems(ctx, orderitem.QueryOrderItemsModel{OrderIds: []int64{created.ID}})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	got, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.TotalCents, got.TotalCents)
	assert.Equal(t, updated.Version, got.Version)

	require.NoError(t, svc.DeleteOrder(ctx, created.ID))
	require.NoError(t, svc.DeleteOrder(ctx, created.ID))

	_, err = svc.GetOrder(ctx, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	items, err = svc.ListOrderItems(ctx, orderitem.QueryOrderItemsModel{OrderIds: []int64{created.ID}})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSQLite_DuplicateLines(t *testing.T) {
	db, s := openSQLite(t)
	svc := MustNewOrderService(WithDB(db))

	created, err := svc.CreateOrder(t.Context(), order.OrderInput{
		CustomerID: s.customerID,
		Status:     order.StatusPending,
		ProductIDs: []int64{s.productA, s.productA},
		Quantities: []int{1, 2},
	})
	require.NoError(t, err)
	require.Len(t, created.OrderItems, 2)
	assert.Equal(t, money.Cents(3000), created.TotalCents)
}

func TestSQLite_OversizedQuantityIsRejected(t *testing.T) {
	db, s := openSQLite(t)
	svc := MustNewOrderService(WithDB(db))

	_, err := svc.CreateOrder(t.Context(), order.OrderInput{
		CustomerID: s.customerID,
		Status:     order.StatusPending,
		ProductIDs: []int64{s.productA},
		Quantities: []int{math.MaxInt64/1000 + 1},
	})
	ve, ok := errs.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "lte", ve.Fields[0].Rule)

	count, err := svc.CountOrders(t.Context())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSQLite_UnknownProductRollsBack(t *testing.T) {
	db, s := openSQLite(t)
	svc := MustNewOrderService(WithDB(db))

	_, err := svc.CreateOrder(t.Context(), order.OrderInput{
		CustomerID: s.customerID,
		Status:     order.StatusPending,
		ProductIDs: []int64{s.productA, 999},
		Quantities: []int{1, 1},
	})
	require.ErrorIs(t, err, errs.ErrInvalidReference)

	n, err := svc.CountOrders(t.Context())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLite_StaleVersionConflict(t *testing.T) {
	db, s := openSQLite(t)
	svc := MustNewOrderService(WithDB(db))
	ctx := t.Context()

	created, err := svc.CreateOrder(ctx, order.OrderInput{
		CustomerID: s.customerID,
		Status:     order.StatusPending,
		ProductIDs: []int64{s.productA},
		Quantities: []int{1},
	})
	require.NoError(t, err)

	in := order.OrderInput{
		Status:     order.StatusShipped,
		ProductIDs: []int64{s.productB},
		Quantities: []int{1},
		Version:    created.Version,
	}
	_, err = svc.UpdateOrder(ctx, created.ID, in)
	require.NoError(t, err)

	_, err = svc.UpdateOrder(ctx, created.ID, in)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestSQLite_VersionedUpdateReportsConflict(t *testing.T) {
	db, s := openSQLite(t)
	svc := MustNewOrderService(WithDB(db))
	ctx := t.Context()

	created, err := svc.CreateOrder(ctx, order.OrderInput{
		CustomerID: s.customerID,
		Status:     order.StatusPending,
		ProductIDs: []int64{s.productA},
		Quantities: []int{1},
	})
	require.NoError(t, err)

	repo := uow.NewUnitOfWork(db).OrderRepository()
	created.Status = order.StatusCancelled
	_, err = repo.UpdateVersioned(ctx, created, created.Version+5)
	require.ErrorIs(t, err, errs.ErrConflict)

	bumped, err := repo.UpdateVersioned(ctx, created, created.Version)
	require.NoError(t, err)
	assert.Equal(t, created.Version+1, bumped.Version)
}
