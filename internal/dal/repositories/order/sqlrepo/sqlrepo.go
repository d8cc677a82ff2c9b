package sqlrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/store/internal/dal/sqlbuilder"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/jmoiron/sqlx"
)

// OrderDal represents order data access layer model
type OrderDal struct {
	Id                int64     `db:"id"`
	CustomerId        int64     `db:"customer_id"`
	CustomerFirstName string    `db:"customer_first_name"`
	CustomerLastName  string    `db:"customer_last_name"`
	OrderDate         time.Time `db:"order_date"`
	Status            string    `db:"status"`
	TotalCents        int64     `db:"total_cents"`
	Version           int64     `db:"version"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model
func (o *OrderDal) ToModel() (order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return order.Order{}, fmt.Errorf("order %d: %w", o.Id, err)
	}

	return order.Order{
		ID:           o.Id,
		CustomerID:   o.CustomerId,
		CustomerName: strings.TrimSpace(o.CustomerFirstName + " " + o.CustomerLastName),
		OrderDate:    o.OrderDate,
		Status:       status,
		TotalCents:   money.Cents(o.TotalCents),
		Version:      o.Version,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		OrderItems:   []orderitem.OrderItem{}, // Will be populated separately
	}, nil
}

// OrderRepository works on a *sqlx.DB or a *sqlx.Tx of either dialect.
type OrderRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

func NewOrderRepository(conn sqlx.ExtContext) *OrderRepository {
	return &OrderRepository{
		conn: conn,
		sb:   sqlbuilder.For(conn),
	}
}

// Insert inserts an order row and returns it with its generated ID.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	if o.Version == 0 {
		o.Version = 1
	}

	query, args, err := r.sb.
		Insert("orders").
		Columns(
			"customer_id",
			"order_date",
			"status",
			"total_cents",
			"version",
			"created_at",
			"updated_at",
		).
		Values(
			o.CustomerID,
			o.OrderDate,
			o.Status.String(),
			int64(o.TotalCents),
			o.Version,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// Get retrieves a single order with its customer name.
func (r *OrderRepository) Get(ctx context.Context, id int64) (order.Order, error) {
	orders, err := r.Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}, Limit: 1})
	if err != nil {
		return order.Order{}, err
	}
	if len(orders) == 0 {
		return order.Order{}, fmt.Errorf("order %d: %w", id, errs.ErrNotFound)
	}

	return orders[0], nil
}

// UpdateVersioned overwrites status and total and bumps the version, guarded by
// the version the caller read.
func (r *OrderRepository) UpdateVersioned(
	ctx context.Context,
	o order.Order,
	expectedVersion int64,
) (order.Order, error) {
	query, args, err := r.sb.
		Update("orders").
		Set("status", o.Status.String()).
		Set("total_cents", int64(o.TotalCents)).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", o.UpdatedAt).
		Where(sq.Eq{"id": o.ID, "version": expectedVersion}).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return order.Order{}, fmt.Errorf("order %d at version %d: %w", o.ID, expectedVersion, errs.ErrConflict)
	}

	o.Version = expectedVersion + 1

	return o, nil
}

// Delete removes the order row. Items must be removed first.
func (r *OrderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.sb.Delete("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// Query retrieves orders based on filter criteria, oldest first.
func (r *OrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select(
			"o.id AS id",
			"o.customer_id AS customer_id",
			"COALESCE(c.first_name, '') AS customer_first_name",
			"COALESCE(c.last_name, '') AS customer_last_name",
			"o.order_date AS order_date",
			"o.status AS status",
			"o.total_cents AS total_cents",
			"o.version AS version",
			"o.created_at AS created_at",
			"o.updated_at AS updated_at",
		).
		From("orders o").
		LeftJoin("customers c ON c.id = o.customer_id").
		OrderBy("o.id ASC")

	if filter != nil {
		if len(filter.Ids) > 0 {
			query = query.Where(sq.Eq{"o.id": filter.Ids})
		}

		if len(filter.CustomerIds) > 0 {
			query = query.Where(sq.Eq{"o.customer_id": filter.CustomerIds})
		}

		if len(filter.Statuses) > 0 {
			statuses := make([]string, len(filter.Statuses))
			for i, s := range filter.Statuses {
				statuses[i] = s.String()
			}
			query = query.Where(sq.Eq{"o.status": statuses})
		}

		if filter.Limit > 0 {
			query = query.Limit(uint64(filter.Limit))
		}

		if filter.Offset > 0 {
			query = query.Offset(uint64(filter.Offset))
		}
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dals []OrderDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	result := make([]order.Order, 0, len(dals))
	for i := range dals {
		model, err := dals[i].ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, model)
	}

	return result, nil
}

// Count returns the number of orders.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("orders").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := sqlx.GetContext(ctx, r.conn, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return n, nil
}
