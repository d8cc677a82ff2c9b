package ordersvc

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/models/orderevent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productA int64 = 1
	productB int64 = 2
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*OrderService, *memDB, *recordingEvents) {
	t.Helper()

	db := newMemDB()
	db.addCustomer(1)
	db.addProduct(productA, 1000)
	db.addProduct(productB, 500)

	events := &recordingEvents{}
	svc := MustNewOrderService(
		WithUnitOfWorkFactory(db.factory()),
		WithEventRepository(events),
		WithClock(func() time.Time { return fixedNow }),
	)

	return svc, db, events
}

func input(status order.Status, ids []int64, qty []int) order.OrderInput {
	return order.OrderInput{CustomerID: 1, Status: status, ProductIDs: ids, Quantities: qty}
}

func fieldRules(t *testing.T, err error) map[string]string {
	t.Helper()

	ve, ok := errs.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)

	out := map[string]string{}
	for _, f := range ve.Fields {
		out[f.Field] = f.Rule
	}

	return out
}

func TestCreateOrder_ComputesTotalFromCurrentPrices(t *testing.T) {
	svc, db, events := newTestService(t)

	got, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA, productB}, []int{2, 3}))
	require.NoError(t, err)

	assert.Equal(t, money.Cents(3500), got.TotalCents)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, fixedNow, got.OrderDate)
	require.Len(t, got.OrderItems, 2)
	assert.Equal(t, productA, got.OrderItems[0].ProductID)
	assert.Equal(t, money.Cents(1000), got.OrderItems[0].UnitPriceCents)
	assert.Equal(t, money.Cents(2000), got.OrderItems[0].LineTotalCents)
	assert.Equal(t, productB, got.OrderItems[1].ProductID)
	assert.Equal(t, money.Cents(1500), got.OrderItems[1].LineTotalCents)
	assert.Equal(t, got.Total(), got.TotalCents)

	assert.Equal(t, 1, db.priceLookups)
	assert.Equal(t, 1, db.commits)
	require.Len(t, events.events, 1)
	assert.Equal(t, orderevent.KindCreated, events.events[0].Kind)
	assert.Equal(t, 2, events.events[0].LineCount)
}

func TestCreateOrder_DuplicateProductsStaySeparateLines(t *testing.T) {
	svc, db, _ := newTestService(t)

	got, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA, productA}, []int{1, 2}))
	require.NoError(t, err)

	require.Len(t, got.OrderItems, 2)
	assert.Equal(t, 1, got.OrderItems[0].Quantity)
	assert.Equal(t, 2, got.OrderItems[1].Quantity)
	assert.Equal(t, money.Cents(3000), got.TotalCents)
	assert.Len(t, db.itemsOf(got.ID), 2)
}

func TestCreateOrder_UnknownProductPersistsNothing(t *testing.T) {
	svc, db, events := newTestService(t)

	_, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA, 99}, []int{1, 1}))
	require.ErrorIs(t, err, errs.ErrInvalidReference)

	assert.Empty(t, db.state.orders)
	assert.Empty(t, db.state.items)
	assert.Zero(t, db.commits)
	assert.Empty(t, events.events)
}

func TestCreateOrder_QuantityAboveLimit(t *testing.T) {
	svc, db, _ := newTestService(t)

	_, err := svc.CreateOrder(t.Context(),
		input(order.StatusPending, []int64{productA}, []int{math.MaxInt64/1000 + 1}))

	rules := fieldRules(t, err)
	assert.Equal(t, "lte", rules["quantities"])
	assert.Zero(t, db.begins)
	assert.Empty(t, db.state.orders)

	o, err := svc.CreateOrder(t.Context(),
		input(order.StatusPending, []int64{productA}, []int{order.MaxQuantity}))
	require.NoError(t, err)
	assert.Equal(t, order.MaxQuantity, o.OrderItems[0].Quantity)
}

func TestCreateOrder_TotalOverflowPersistsNothing(t *testing.T) {
	cases := map[string]struct {
		price money.Cents
		ids   []int64
		qty   []int
	}{
		"line total":  {price: math.MaxInt64 / 2, ids: []int64{3}, qty: []int{3}},
		"order total": {price: math.MaxInt64/2 + 1, ids: []int64{3, 3}, qty: []int{1, 1}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, db, events := newTestService(t)
			db.addProduct(3, tc.price)

			_, err := svc.CreateOrder(t.Context(), input(order.StatusPending, tc.ids, tc.qty))

			rules := fieldRules(t, err)
			assert.Equal(t, "total", rules["quantities"])
			assert.Empty(t, db.state.orders)
			assert.Empty(t, db.state.items)
			assert.Zero(t, db.commits)
			assert.Empty(t, events.events)
		})
	}
}

func TestUpdateOrder_TotalOverflowKeepsLines(t *testing.T) {
	svc, db, _ := newTestService(t)
	db.addProduct(3, math.MaxInt64/2)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA}, []int{2}))
	require.NoError(t, err)

	_, err = svc.UpdateOrder(t.Context(), created.ID, input(order.StatusShipped, []int64{3}, []int{5}))

	rules := fieldRules(t, err)
	assert.Equal(t, "total", rules["quantities"])

	stored, err := svc.GetOrder(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(2000), stored.TotalCents)
	assert.Equal(t, order.StatusPending, stored.Status)
	assert.Len(t, stored.OrderItems, 1)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	svc, db, _ := newTestService(t)

	in := input(order.StatusPending, []int64{productA}, []int{1})
	in.CustomerID = 42

	_, err := svc.CreateOrder(t.Context(), in)
	require.ErrorIs(t, err, errs.ErrInvalidReference)
	assert.Empty(t, db.state.orders)
}

func TestCreateOrder_MismatchedArraysDoNotTouchStorage(t *testing.T) {
	svc, db, _ := newTestService(t)

	_, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA, productB}, []int{1}))

	rules := fieldRules(t, err)
	assert.Equal(t, "eqlen", rules["quantities"])
	assert.Zero(t, db.begins)
	assert.Zero(t, db.priceLookups)
}

func TestCreateOrder_AccumulatesEveryViolation(t *testing.T) {
	svc, db, _ := newTestService(t)

	_, err := svc.CreateOrder(t.Context(), order.OrderInput{
		CustomerID: 0,
		Status:     "",
		ProductIDs: []int64{productA, productB},
		Quantities: []int{0, -1},
	})

	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	rules := fieldRules(t, err)
	assert.Equal(t, "gt", rules["customerId"])
	assert.Equal(t, "required", rules["status"])
	assert.Equal(t, "gte", rules["quantities[0]"])
	assert.Equal(t, "gte", rules["quantities[1]"])

	for _, f := range ve.Fields {
		switch f.Field {
		case "customerId":
			assert.Equal(t, "Please select a customer.", f.Message)
		case "status":
			assert.Equal(t, "Please select an order status.", f.Message)
		default:
			assert.Equal(t, "Quantity must be at least 1.", f.Message)
		}
	}
	assert.Zero(t, db.begins)
}

func TestCreateOrder_EmptyAndMissingArrays(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{}, nil))
	rules := fieldRules(t, err)
	assert.Equal(t, "min", rules["productIds"])
	assert.Equal(t, "required", rules["quantities"])
}

func TestCreateOrder_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateOrder(t.Context(), input("Lost", []int64{productA}, []int{1}))
	assert.Equal(t, "status", fieldRules(t, err)["status"])
}

func TestUpdateOrder_ReplacesAllLines(t *testing.T) {
	svc, db, events := newTestService(t)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA, productB}, []int{2, 3}))
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(t.Context(), created.ID, input(order.StatusShipped, []int64{productA}, []int{1}))
	require.NoError(t, err)

	assert.Equal(t, money.Cents(1000), updated.TotalCents)
	assert.Equal(t, order.StatusShipped, updated.Status)
	assert.Equal(t, int64(2), updated.Version)
	require.Len(t, updated.OrderItems, 1)
	assert.Equal(t, productA, updated.OrderItems[0].ProductID)
	assert.Len(t, db.itemsOf(created.ID), 1)

	require.Len(t, events.events, 2)
	assert.Equal(t, orderevent.KindUpdated, events.events[1].Kind)
}

func TestUpdateOrder_UsesPriceAtMutationTime(t *testing.T) {
	svc, db, _ := newTestService(t)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA}, []int{2}))
	require.NoError(t, err)

	db.addProduct(productA, 1200)
	stored := db.state.orders[created.ID]
	assert.Equal(t, money.Cents(2000), stored.TotalCents)

	updated, err := svc.UpdateOrder(t.Context(), created.ID, input(order.StatusPending, []int64{productA}, []int{2}))
	require.NoError(t, err)
	assert.Equal(t, money.Cents(2400), updated.TotalCents)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateOrder(t.Context(), 404, input(order.StatusPending, []int64{productA}, []int{1}))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateOrder_StaleCallerVersion(t *testing.T) {
	svc, db, _ := newTestService(t)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA}, []int{1}))
	require.NoError(t, err)

	_, err = svc.UpdateOrder(t.Context(), created.ID, input(order.StatusProcessing, []int64{productB}, []int{1}))
	require.NoError(t, err)

	stale := input(order.StatusCancelled, []int64{productA}, []int{5})
	stale.Version = created.Version
	_, err = svc.UpdateOrder(t.Context(), created.ID, stale)
	require.ErrorIs(t, err, errs.ErrConflict)

	stored := db.state.orders[created.ID]
	assert.Equal(t, order.StatusProcessing, stored.Status)
	assert.Equal(t, money.Cents(500), stored.TotalCents)
}

func TestUpdateOrder_ConcurrentWriterIsConflict(t *testing.T) {
	svc, db, _ := newTestService(t)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA}, []int{1}))
	require.NoError(t, err)

	db.concurrentWrite = func(s *memState, id int64) {
		o := s.orders[id]
		o.Version++
		s.orders[id] = o
	}

	_, err = svc.UpdateOrder(t.Context(), created.ID, input(order.StatusShipped, []int64{productB}, []int{1}))
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.False(t, errors.Is(err, errs.ErrNotFound))

	assert.Len(t, db.itemsOf(created.ID), 1)
	assert.Equal(t, productA, db.itemsOf(created.ID)[0].ProductID)
}

func TestUpdateOrder_ConcurrentDeleteIsNotFound(t *testing.T) {
	svc, db, _ := newTestService(t)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA}, []int{1}))
	require.NoError(t, err)

	db.concurrentWrite = func(s *memState, id int64) {
		delete(s.orders, id)
	}

	_, err = svc.UpdateOrder(t.Context(), created.ID, input(order.StatusShipped, []int64{productB}, []int{1}))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateOrder_UnknownProductKeepsOldLines(t *testing.T) {
	svc, db, _ := newTestService(t)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA, productB}, []int{1, 1}))
	require.NoError(t, err)

	_, err = svc.UpdateOrder(t.Context(), created.ID, input(order.StatusPending, []int64{77}, []int{1}))
	require.ErrorIs(t, err, errs.ErrInvalidReference)

	assert.Len(t, db.itemsOf(created.ID), 2)
	assert.Equal(t, int64(1), db.state.orders[created.ID].Version)
}

func TestUpdateOrder_IgnoresCustomerField(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA}, []int{1}))
	require.NoError(t, err)

	in := input(order.StatusDelivered, []int64{productA}, []int{3})
	in.CustomerID = 0
	updated, err := svc.UpdateOrder(t.Context(), created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.CustomerID)
}

func TestDeleteOrder_IsIdempotent(t *testing.T) {
	svc, db, events := newTestService(t)

	created, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA, productB}, []int{1, 1}))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(t.Context(), created.ID))
	require.NoError(t, svc.DeleteOrder(t.Context(), created.ID))
	require.NoError(t, svc.DeleteOrder(t.Context(), 12345))

	assert.Empty(t, db.state.orders)
	assert.Empty(t, db.state.items)

	require.Len(t, events.events, 2)
	assert.Equal(t, orderevent.KindDeleted, events.events[1].Kind)
	assert.Equal(t, 2, events.events[1].LineCount)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	svc, db, events := newTestService(t)
	events.err = errors.New("broker down")

	_, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA}, []int{1}))
	require.NoError(t, err)
	assert.Len(t, db.state.orders, 1)
}

func TestListOrders_AttachesItems(t *testing.T) {
	svc, _, _ := newTestService(t)

	first, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA}, []int{1}))
	require.NoError(t, err)
	second, err := svc.CreateOrder(t.Context(), input(order.StatusPending, []int64{productA, productB}, []int{1, 2}))
	require.NoError(t, err)

	orders, err := svc.ListOrders(t.Context(), order.QueryOrdersModel{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Len(t, orders[0].OrderItems, 1)
	assert.Equal(t, second.ID, orders[1].ID)
	assert.Len(t, orders[1].OrderItems, 2)
}
