package sqlrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/store/internal/dal/sqlbuilder"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/brand"
	"github.com/jmoiron/sqlx"
)

type BrandDal struct {
	Id          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	FoundedYear int       `db:"founded_year"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (b *BrandDal) ToModel() brand.Brand {
	return brand.Brand{
		ID:          b.Id,
		Name:        b.Name,
		Description: b.Description,
		FoundedYear: b.FoundedYear,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type BrandRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

func NewBrandRepository(conn sqlx.ExtContext) *BrandRepository {
	return &BrandRepository{
		conn: conn,
		sb:   sqlbuilder.For(conn),
	}
}

func (r *BrandRepository) Insert(ctx context.Context, b brand.Brand) (brand.Brand, error) {
	query, args, err := r.sb.
		Insert("brands").
		Columns("name", "description", "founded_year", "created_at", "updated_at").
		Values(b.Name, b.Description, b.FoundedYear, b.CreatedAt, b.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return brand.Brand{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&b.ID); err != nil {
		return brand.Brand{}, fmt.Errorf("failed to insert brand: %w", err)
	}

	return b, nil
}

func (r *BrandRepository) Get(ctx context.Context, id int64) (brand.Brand, error) {
	brands, err := r.Query(ctx, &brand.QueryBrandsModel{Ids: []int64{id}, Limit: 1})
	if err != nil {
		return brand.Brand{}, err
	}
	if len(brands) == 0 {
		return brand.Brand{}, fmt.Errorf("brand %d: %w", id, errs.ErrNotFound)
	}

	return brands[0], nil
}

func (r *BrandRepository) Update(ctx context.Context, b brand.Brand) (brand.Brand, error) {
	query, args, err := r.sb.
		Update("brands").
		Set("name", b.Name).
		Set("description", b.Description).
		Set("founded_year", b.FoundedYear).
		Set("updated_at", b.UpdatedAt).
		Where(sq.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return brand.Brand{}, fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return brand.Brand{}, fmt.Errorf("failed to update brand: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return brand.Brand{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return brand.Brand{}, fmt.Errorf("brand %d: %w", b.ID, errs.ErrNotFound)
	}

	return b, nil
}

func (r *BrandRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.sb.Delete("brands").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete brand: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *BrandRepository) Query(ctx context.Context, filter *brand.QueryBrandsModel) ([]brand.Brand, error) {
	query := r.sb.
		Select("id", "name", "description", "founded_year", "created_at", "updated_at").
		From("brands").
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

	var dals []BrandDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}

	result := make([]brand.Brand, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}

func (r *BrandRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("brands").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := sqlx.GetContext(ctx, r.conn, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count brands: %w", err)
	}

	return n, nil
}
