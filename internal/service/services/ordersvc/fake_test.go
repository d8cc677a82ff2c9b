package ordersvc

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/corray333/backend-labs/store/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/customer"
	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/models/orderevent"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
)

// memState is the content of the in-memory database.
type memState struct {
	orders      map[int64]order.Order
	items       []orderitem.OrderItem
	prices      map[int64]money.Cents
	customers   map[int64]customer.Customer
	nextOrderID int64
	nextItemID  int64
}

func (s *memState) clone() *memState {
	return &memState{
		orders:      maps.Clone(s.orders),
		items:       slices.Clone(s.items),
		prices:      maps.Clone(s.prices),
		customers:   maps.Clone(s.customers),
		nextOrderID: s.nextOrderID,
		nextItemID:  s.nextItemID,
	}
}

// memDB keeps committed state and counts how the service used it.
type memDB struct {
	mu    sync.Mutex
	state *memState

	begins       int
	commits      int
	priceLookups int

	// concurrentWrite runs inside UpdateVersioned before the version check,
	// standing in for another writer that committed in between.
	concurrentWrite func(s *memState, orderID int64)
}

func newMemDB() *memDB {
	return &memDB{state: &memState{
		orders:    map[int64]order.Order{},
		prices:    map[int64]money.Cents{},
		customers: map[int64]customer.Customer{},
	}}
}

func (db *memDB) factory() func() unitOfWork {
	return func() unitOfWork {
		return &memUOW{db: db}
	}
}

func (db *memDB) addProduct(id int64, price money.Cents) {
	db.state.prices[id] = price
}

func (db *memDB) addCustomer(id int64) {
	db.state.customers[id] = customer.Customer{ID: id, FirstName: "Ann", LastName: "Lee"}
}

func (db *memDB) itemsOf(orderID int64) []orderitem.OrderItem {
	var out []orderitem.OrderItem
	for _, it := range db.state.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}

	return out
}

type memUOW struct {
	db *memDB
	tx *memState
}

func (u *memUOW) cur() *memState {
	if u.tx != nil {
		return u.tx
	}

	return u.db.state
}

func (u *memUOW) Begin(context.Context) error {
	u.db.mu.Lock()
	u.db.begins++
	u.tx = u.db.state.clone()

	return nil
}

func (u *memUOW) Commit() error {
	if u.tx == nil {
		return nil
	}
	u.db.state = u.tx
	u.db.commits++
	u.tx = nil
	u.db.mu.Unlock()

	return nil
}

func (u *memUOW) Rollback() error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.db.mu.Unlock()

	return nil
}

func (u *memUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &memOrderRepo{u: u}
}

func (u *memUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return &memOrderItemRepo{u: u}
}

func (u *memUOW) ProductRepository() iproductrepo.IProductRepository {
	return &memProductRepo{u: u}
}

func (u *memUOW) CustomerRepository() icustomerrepo.ICustomerRepository {
	return &memCustomerRepo{u: u}
}

type memOrderRepo struct{ u *memUOW }

func (r *memOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	s := r.u.cur()
	s.nextOrderID++
	o.ID = s.nextOrderID
	s.orders[o.ID] = o

	return o, nil
}

func (r *memOrderRepo) Get(_ context.Context, id int64) (order.Order, error) {
	o, ok := r.u.cur().orders[id]
	if !ok {
		return order.Order{}, fmt.Errorf("order %d: %w", id, errs.ErrNotFound)
	}
	o.OrderItems = []orderitem.OrderItem{}

	return o, nil
}

func (r *memOrderRepo) UpdateVersioned(_ context.Context, o order.Order, expected int64) (order.Order, error) {
	s := r.u.cur()
	if r.u.db.concurrentWrite != nil {
		r.u.db.concurrentWrite(s, o.ID)
	}

	stored, ok := s.orders[o.ID]
	if !ok || stored.Version != expected {
		return order.Order{}, fmt.Errorf("order %d: %w", o.ID, errs.ErrConflict)
	}
	o.Version = expected + 1
	s.orders[o.ID] = o

	return o, nil
}

func (r *memOrderRepo) Delete(_ context.Context, id int64) (bool, error) {
	s := r.u.cur()
	_, ok := s.orders[id]
	delete(s.orders, id)

	return ok, nil
}

func (r *memOrderRepo) Query(_ context.Context, _ *order.QueryOrdersModel) ([]order.Order, error) {
	s := r.u.cur()
	ids := slices.Sorted(maps.Keys(s.orders))
	out := make([]order.Order, 0, len(ids))
	for _, id := range ids {
		o := s.orders[id]
		o.OrderItems = []orderitem.OrderItem{}
		out = append(out, o)
	}

	return out, nil
}

func (r *memOrderRepo) Count(context.Context) (int64, error) {
	return int64(len(r.u.cur().orders)), nil
}

type memOrderItemRepo struct{ u *memUOW }

func (r *memOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	s := r.u.cur()
	out := make([]orderitem.OrderItem, 0, len(items))
	for _, it := range items {
		s.nextItemID++
		it.ID = s.nextItemID
		s.items = append(s.items, it)
		out = append(out, it)
	}

	return out, nil
}

func (r *memOrderItemRepo) Query(
	_ context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	out := []orderitem.OrderItem{}
	for _, it := range r.u.cur().items {
		if len(filter.OrderIds) > 0 && !slices.Contains(filter.OrderIds, it.OrderID) {
			continue
		}
		out = append(out, it)
	}

	return out, nil
}

func (r *memOrderItemRepo) DeleteByOrderIDs(_ context.Context, ids []int64) (int64, error) {
	s := r.u.cur()
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(it orderitem.OrderItem) bool {
		return slices.Contains(ids, it.OrderID)
	})

	return int64(before - len(s.items)), nil
}

// memProductRepo only supports price lookups; other calls panic on the nil
// embedded interface.
type memProductRepo struct {
	iproductrepo.IProductRepository
	u *memUOW
}

func (r *memProductRepo) PricesByIDs(_ context.Context, ids []int64) (map[int64]money.Cents, error) {
	r.u.db.priceLookups++
	out := map[int64]money.Cents{}
	for _, id := range ids {
		if p, ok := r.u.cur().prices[id]; ok {
			out[id] = p
		}
	}

	return out, nil
}

type memCustomerRepo struct {
	icustomerrepo.ICustomerRepository
	u *memUOW
}

func (r *memCustomerRepo) Get(_ context.Context, id int64) (customer.Customer, error) {
	c, ok := r.u.cur().customers[id]
	if !ok {
		return customer.Customer{}, fmt.Errorf("customer %d: %w", id, errs.ErrNotFound)
	}

	return c, nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []orderevent.Event
	err    error
}

func (r *recordingEvents) Publish(_ context.Context, evs []orderevent.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evs...)

	return r.err
}
