package sqlrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/store/internal/dal/sqlbuilder"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/customer"
	"github.com/jmoiron/sqlx"
)

// CustomerDal represents customer data access layer model
type CustomerDal struct {
	Id        int64     `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (c *CustomerDal) ToModel() customer.Customer {
	return customer.Customer{
		ID:        c.Id,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CustomerRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

func NewCustomerRepository(conn sqlx.ExtContext) *CustomerRepository {
	return &CustomerRepository{
		conn: conn,
		sb:   sqlbuilder.For(conn),
	}
}

func (r *CustomerRepository) Insert(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	query, args, err := r.sb.
		Insert("customers").
		Columns("first_name", "last_name", "email", "phone", "created_at", "updated_at").
		Values(c.FirstName, c.LastName, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return customer.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	return c, nil
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (customer.Customer, error) {
	customers, err := r.Query(ctx, &customer.QueryCustomersModel{Ids: []int64{id}, Limit: 1})
	if err != nil {
		return customer.Customer{}, err
	}
	if len(customers) == 0 {
		return customer.Customer{}, fmt.Errorf("customer %d: %w", id, errs.ErrNotFound)
	}

	return customers[0], nil
}

func (r *CustomerRepository) Update(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	query, args, err := r.sb.
		Update("customers").
		Set("first_name", c.FirstName).
		Set("last_name", c.LastName).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return customer.Customer{}, fmt.Errorf("customer %d: %w", c.ID, errs.ErrNotFound)
	}

	return c, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.sb.Delete("customers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *CustomerRepository) Query(
	ctx context.Context,
	filter *customer.QueryCustomersModel,
) ([]customer.Customer, error) {
	query := r.sb.
		Select("id", "first_name", "last_name", "email", "phone", "created_at", "updated_at").
		From("customers").
		OrderBy("last_name ASC", "first_name ASC", "id ASC")

	if filter != nil {
		if len(filter.Ids) > 0 {
			query = query.Where(sq.Eq{"id": filter.Ids})
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

	var dals []CustomerDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	result := make([]customer.Customer, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("customers").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := sqlx.GetContext(ctx, r.conn, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return n, nil
}
