package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/corray333/backend-labs/store/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/ieventrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backend-labs/store/internal/dal/uow"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/models/orderevent"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/store/internal/service/validation"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var messages = validation.Messages{
	"CustomerID.gt":       "Please select a customer.",
	"Status.required":     "Please select an order status.",
	"Status.status":       "Unknown order status.",
	"ProductIDs.required": "Please add at least one product with quantity.",
	"ProductIDs.min":      "Please add at least one product with quantity.",
	"ProductIDs.gt":       "One or more selected products are invalid.",
	"Quantities.required": "Please add at least one product with quantity.",
	"Quantities.min":      "Please add at least one product with quantity.",
	"Quantities.gte":      "Quantity must be at least 1.",
	"Quantities.lte":      "Quantity must be at most 1000000.",
	"Quantities.eqlen":    "Every product needs exactly one quantity.",
	"Version.gte":         "Version must not be negative.",
}

// OrderService is a service for managing orders.
type OrderService struct {
	newUOW    func() unitOfWork
	eventRepo ieventrepo.IEventRepository
	validate  *validatorv10.Validate
	nowFunc   func() time.Time
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ProductRepository() iproductrepo.IProductRepository
	CustomerRepository() icustomerrepo.ICustomerRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		validate: newValidator(),
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("ordersvc: no database configured")
	}

	return s
}

// WithDB runs every operation against db.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDB(db *sqlx.DB) option {
	return func(s *OrderService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(db)
		}
	}
}

// WithUnitOfWorkFactory replaces the database-backed unit of work.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithEventRepository publishes an event after every committed mutation.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventRepository(repo ieventrepo.IEventRepository) option {
	return func(s *OrderService) {
		s.eventRepo = repo
	}
}

// WithClock overrides the time source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.nowFunc = now
	}
}

func newValidator() *validatorv10.Validate {
	v := validation.New()
	_ = v.RegisterValidation("status", func(fl validatorv10.FieldLevel) bool {
		_, err := order.ParseStatus(fl.Field().String())

		return err == nil
	})
	v.RegisterStructValidation(func(sl validatorv10.StructLevel) {
		in := sl.Current().Interface().(order.OrderInput)
		if len(in.ProductIDs) > 0 && len(in.Quantities) > 0 && len(in.ProductIDs) != len(in.Quantities) {
			sl.ReportError(in.Quantities, "quantities", "Quantities", "eqlen", "productIds")
		}
	}, order.OrderInput{})

	return v
}

// CreateOrder validates in, prices every line at the products' current prices
// and stores the order with its lines in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, in order.OrderInput) (_ order.Order, err error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.CreateOrder")
	defer func() { endSpan(span, err) }()

	if err := validation.Struct(s.validate, in, messages); err != nil {
		return order.Order{}, err
	}
	lines := in.Lines()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(work)

	if _, err := work.CustomerRepository().Get(ctx, in.CustomerID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return order.Order{}, fmt.Errorf("customer %d: %w", in.CustomerID, errs.ErrInvalidReference)
		}

		return order.Order{}, fmt.Errorf("failed to load customer: %w", err)
	}

	now := s.nowFunc()
	items, total, err := priceLines(ctx, work.ProductRepository(), lines, now)
	if err != nil {
		return order.Order{}, err
	}

	created, err := work.OrderRepository().Insert(ctx, order.Order{
		CustomerID: in.CustomerID,
		OrderDate:  now,
		Status:     in.Status,
		TotalCents: total,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return order.Order{}, err
	}

	for i := range items {
		items[i].OrderID = created.ID
	}
	if _, err := work.OrderItemRepository().BulkInsert(ctx, items); err != nil {
		return order.Order{}, err
	}

	snapshot, err := loadOrder(ctx, work, created.ID)
	if err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Order created",
		"order_id", snapshot.ID,
		"customer_id", snapshot.CustomerID,
		"lines", len(snapshot.OrderItems),
		"total", snapshot.TotalCents.String(),
	)
	s.publish(ctx, orderevent.KindCreated, snapshot)

	return snapshot, nil
}

// UpdateOrder replaces the status and every line of an existing order.
// A stale in.Version, or a concurrent writer that bumped the version between
// read and write, yields errs.ErrConflict.
func (s *OrderService) UpdateOrder(
	ctx context.Context,
	orderID int64,
	in order.OrderInput,
) (_ order.Order, err error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.UpdateOrder")
	span.SetAttributes(attribute.Int64("order.id", orderID))
	defer func() { endSpan(span, err) }()

	if err := validation.StructExcept(s.validate, in, messages, "CustomerID"); err != nil {
		return order.Order{}, err
	}
	lines := in.Lines()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(work)

	current, err := work.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}
	if in.Version > 0 && in.Version != current.Version {
		return order.Order{}, fmt.Errorf(
			"order %d is at version %d, caller read %d: %w",
			orderID, current.Version, in.Version, errs.ErrConflict,
		)
	}

	now := s.nowFunc()
	items, total, err := priceLines(ctx, work.ProductRepository(), lines, now)
	if err != nil {
		return order.Order{}, err
	}

	current.Status = in.Status
	current.TotalCents = total
	current.UpdatedAt = now
	if _, err := work.OrderRepository().UpdateVersioned(ctx, current, current.Version); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return order.Order{}, recheckConflict(ctx, work, orderID, err)
		}

		return order.Order{}, err
	}

	if _, err := work.OrderItemRepository().DeleteByOrderIDs(ctx, []int64{orderID}); err != nil {
		return order.Order{}, err
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if _, err := work.OrderItemRepository().BulkInsert(ctx, items); err != nil {
		return order.Order{}, err
	}

	snapshot, err := loadOrder(ctx, work, orderID)
	if err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Order updated",
		"order_id", snapshot.ID,
		"version", snapshot.Version,
		"lines", len(snapshot.OrderItems),
		"total", snapshot.TotalCents.String(),
	)
	s.publish(ctx, orderevent.KindUpdated, snapshot)

	return snapshot, nil
}

// DeleteOrder removes an order and its lines. Deleting a missing order succeeds.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) (err error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.DeleteOrder")
	span.SetAttributes(attribute.Int64("order.id", orderID))
	defer func() { endSpan(span, err) }()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(work)

	snapshot, err := loadOrder(ctx, work, orderID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := work.OrderItemRepository().DeleteByOrderIDs(ctx, []int64{orderID}); err != nil {
		return err
	}
	if _, err := work.OrderRepository().Delete(ctx, orderID); err != nil {
		return err
	}

	if err := work.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Order deleted", "order_id", orderID, "lines", len(snapshot.OrderItems))
	s.publish(ctx, orderevent.KindDeleted, snapshot)

	return nil
}

// GetOrder returns an order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.GetOrder")
	defer span.End()

	return loadOrder(ctx, s.newUOW(), orderID)
}

// ListOrders retrieves orders with their order items based on filter.
func (s *OrderService) ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.ListOrders")
	defer span.End()

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderItemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		orderItemQuery.OrderIds = append(orderItemQuery.OrderIds, o.ID)
	}
	orderItems, err := work.OrderItemRepository().Query(ctx, orderItemQuery)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]orderitem.OrderItem, len(orders))
	for _, item := range orderItems {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		if items, ok := byOrder[orders[i].ID]; ok {
			orders[i].OrderItems = items
		}
	}

	return orders, nil
}

// ListOrderItems returns order lines joined with product names.
func (s *OrderService) ListOrderItems(
	ctx context.Context,
	filter orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.ListOrderItems")
	defer span.End()

	return s.newUOW().OrderItemRepository().Query(ctx, &filter)
}

// CountOrders returns the number of stored orders.
func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.newUOW().OrderRepository().Count(ctx)
}

// priceLines resolves current prices for the distinct products of lines with
// one lookup and builds one item per line in input order.
func priceLines(
	ctx context.Context,
	products iproductrepo.IProductRepository,
	lines []order.Line,
	now time.Time,
) ([]orderitem.OrderItem, money.Cents, error) {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	prices, err := products.PricesByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	if len(prices) < len(ids) {
		missing := make([]int64, 0, len(ids)-len(prices))
		for _, id := range ids {
			if _, ok := prices[id]; !ok {
				missing = append(missing, id)
			}
		}

		return nil, 0, fmt.Errorf("products %v: %w", missing, errs.ErrInvalidReference)
	}

	items := make([]orderitem.OrderItem, 0, len(lines))
	var total money.Cents
	for _, l := range lines {
		item := orderitem.OrderItem{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPriceCents: prices[l.ProductID],
			CreatedAt:      now,
		}
		item.LineTotalCents, err = item.UnitPriceCents.MulChecked(l.Quantity)
		if err == nil {
			total, err = total.AddChecked(item.LineTotalCents)
		}
		if err != nil {
			ve := &errs.ValidationError{}
			ve.Add("quantities", "total", "The order total is too large.")

			return nil, 0, ve
		}
		items = append(items, item)
	}

	return items, total, nil
}

type orderReader interface {
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

func loadOrder(ctx context.Context, work orderReader, orderID int64) (order.Order, error) {
	o, err := work.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{orderID},
	})
	if err != nil {
		return order.Order{}, err
	}
	o.OrderItems = items

	return o, nil
}

// recheckConflict tells a vanished order apart from one that was modified.
func recheckConflict(ctx context.Context, work unitOfWork, orderID int64, conflict error) error {
	if _, err := work.OrderRepository().Get(ctx, orderID); err != nil {
		return err
	}

	return conflict
}

func (s *OrderService) publish(ctx context.Context, kind orderevent.Kind, o order.Order) {
	if s.eventRepo == nil {
		return
	}

	ev := orderevent.FromOrder(kind, o, s.nowFunc())
	if err := s.eventRepo.Publish(ctx, []orderevent.Event{ev}); err != nil {
		slog.Warn("Failed to publish order event", "kind", kind, "order_id", o.ID, "error", err)
	}
}

func rollback(work unitOfWork) {
	if err := work.Rollback(); err != nil {
		slog.Error("Failed to rollback transaction", "error", err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
