package sqlrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/store/internal/dal/sqlbuilder"
	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/jmoiron/sqlx"
)

// OrderItemDal represents order item data access layer model
type OrderItemDal struct {
	Id             int64     `db:"id"`
	OrderId        int64     `db:"order_id"`
	ProductId      int64     `db:"product_id"`
	ProductName    string    `db:"product_name"`
	Quantity       int       `db:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	CreatedAt      time.Time `db:"created_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model
func (oi *OrderItemDal) ToModel() orderitem.OrderItem {
	item := orderitem.OrderItem{
		ID:             oi.Id,
		OrderID:        oi.OrderId,
		ProductID:      oi.ProductId,
		ProductName:    oi.ProductName,
		Quantity:       oi.Quantity,
		UnitPriceCents: money.Cents(oi.UnitPriceCents),
		CreatedAt:      oi.CreatedAt,
	}
	item.LineTotalCents = item.LineTotal()

	return item
}

// OrderItemRepository works on a *sqlx.DB or a *sqlx.Tx of either dialect.
type OrderItemRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

func NewOrderItemRepository(conn sqlx.ExtContext) *OrderItemRepository {
	return &OrderItemRepository{
		conn: conn,
		sb:   sqlbuilder.For(conn),
	}
}

// BulkInsert inserts order items in input order. Each row is inserted on its
// own so generated IDs line up with the input on every dialect.
func (r *OrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	result := make([]orderitem.OrderItem, 0, len(orderItems))
	for _, item := range orderItems {
		query, args, err := r.sb.
			Insert("order_items").
			Columns(
				"order_id",
				"product_id",
				"quantity",
				"unit_price_cents",
				"created_at",
			).
			Values(
				item.OrderID,
				item.ProductID,
				item.Quantity,
				int64(item.UnitPriceCents),
				item.CreatedAt,
			).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert query: %w", err)
		}

		if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
		item.LineTotalCents = item.LineTotal()
		result = append(result, item)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria, in insertion order.
func (r *OrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select(
			"oi.id AS id",
			"oi.order_id AS order_id",
			"oi.product_id AS product_id",
			"COALESCE(p.name, '') AS product_name",
			"oi.quantity AS quantity",
			"oi.unit_price_cents AS unit_price_cents",
			"oi.created_at AS created_at",
		).
		From("order_items oi").
		LeftJoin("products p ON p.id = oi.product_id").
		OrderBy("oi.id ASC")

	if filter != nil {
		if len(filter.Ids) > 0 {
			query = query.Where(sq.Eq{"oi.id": filter.Ids})
		}

		if len(filter.OrderIds) > 0 {
			query = query.Where(sq.Eq{"oi.order_id": filter.OrderIds})
		}

		if len(filter.ProductIds) > 0 {
			query = query.Where(sq.Eq{"oi.product_id": filter.ProductIds})
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

	var dals []OrderItemDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	result := make([]orderitem.OrderItem, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}

func (r *OrderItemRepository) DeleteByOrderIDs(ctx context.Context, orderIDs []int64) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}

	query, args, err := r.sb.Delete("order_items").Where(sq.Eq{"order_id": orderIDs}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order items: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
