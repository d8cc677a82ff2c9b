package sqlrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/store/internal/dal/sqlbuilder"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/category"
	"github.com/jmoiron/sqlx"
)

type CategoryDal struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (c *CategoryDal) ToModel() category.Category {
	return category.Category{
		ID:        c.Id,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CategoryRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

func NewCategoryRepository(conn sqlx.ExtContext) *CategoryRepository {
	return &CategoryRepository{
		conn: conn,
		sb:   sqlbuilder.For(conn),
	}
}

func (r *CategoryRepository) Insert(ctx context.Context, c category.Category) (category.Category, error) {
	query, args, err := r.sb.
		Insert("categories").
		Columns("name", "is_active", "created_at", "updated_at").
		Values(c.Name, c.IsActive, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return category.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}

	return c, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id int64) (category.Category, error) {
	categories, err := r.Query(ctx, &category.QueryCategoriesModel{Ids: []int64{id}, Limit: 1})
	if err != nil {
		return category.Category{}, err
	}
	if len(categories) == 0 {
		return category.Category{}, fmt.Errorf("category %d: %w", id, errs.ErrNotFound)
	}

	return categories[0], nil
}

func (r *CategoryRepository) Update(ctx context.Context, c category.Category) (category.Category, error) {
	query, args, err := r.sb.
		Update("categories").
		Set("name", c.Name).
		Set("is_active", c.IsActive).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return category.Category{}, fmt.Errorf("category %d: %w", c.ID, errs.ErrNotFound)
	}

	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.sb.Delete("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *CategoryRepository) Query(
	ctx context.Context,
	filter *category.QueryCategoriesModel,
) ([]category.Category, error) {
	query := r.sb.
		Select("id", "name", "is_active", "created_at", "updated_at").
		From("categories").
		OrderBy("name ASC", "id ASC")

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

	var dals []CategoryDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	result := make([]category.Category, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("categories").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := sqlx.GetContext(ctx, r.conn, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}

	return n, nil
}
