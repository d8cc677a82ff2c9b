package sqlrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/store/internal/dal/sqlbuilder"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/product"
	"github.com/jmoiron/sqlx"
)

// ProductDal represents product data access layer model
type ProductDal struct {
	Id           int64     `db:"id"`
	Name         string    `db:"name"`
	PriceCents   int64     `db:"price_cents"`
	ImageUrl     string    `db:"image_url"`
	Color        string    `db:"color"`
	BrandId      int64     `db:"brand_id"`
	BrandName    string    `db:"brand_name"`
	CategoryId   int64     `db:"category_id"`
	CategoryName string    `db:"category_name"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to service layer Product model
func (p *ProductDal) ToModel() product.Product {
	return product.Product{
		ID:           p.Id,
		Name:         p.Name,
		PriceCents:   money.Cents(p.PriceCents),
		ImageURL:     p.ImageUrl,
		Color:        p.Color,
		BrandID:      p.BrandId,
		BrandName:    p.BrandName,
		CategoryID:   p.CategoryId,
		CategoryName: p.CategoryName,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type priceDal struct {
	Id         int64 `db:"id"`
	PriceCents int64 `db:"price_cents"`
}

type ProductRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

func NewProductRepository(conn sqlx.ExtContext) *ProductRepository {
	return &ProductRepository{
		conn: conn,
		sb:   sqlbuilder.For(conn),
	}
}

func (r *ProductRepository) Insert(ctx context.Context, p product.Product) (product.Product, error) {
	query, args, err := r.sb.
		Insert("products").
		Columns(
			"name",
			"price_cents",
			"image_url",
			"color",
			"brand_id",
			"category_id",
			"created_at",
			"updated_at",
		).
		Values(
			p.Name,
			int64(p.PriceCents),
			p.ImageURL,
			p.Color,
			p.BrandID,
			p.CategoryID,
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return p, nil
}

// Get returns the product with brand and category names, or errs.ErrNotFound.
func (r *ProductRepository) Get(ctx context.Context, id int64) (product.Product, error) {
	products, err := r.Query(ctx, &product.QueryProductsModel{Ids: []int64{id}, Limit: 1})
	if err != nil {
		return product.Product{}, err
	}
	if len(products) == 0 {
		return product.Product{}, fmt.Errorf("product %d: %w", id, errs.ErrNotFound)
	}

	return products[0], nil
}

func (r *ProductRepository) Update(ctx context.Context, p product.Product) (product.Product, error) {
	query, args, err := r.sb.
		Update("products").
		Set("name", p.Name).
		Set("price_cents", int64(p.PriceCents)).
		Set("image_url", p.ImageURL).
		Set("color", p.Color).
		Set("brand_id", p.BrandID).
		Set("category_id", p.CategoryID).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return product.Product{}, fmt.Errorf("product %d: %w", p.ID, errs.ErrNotFound)
	}

	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.sb.Delete("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *ProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	query := r.sb.
		Select(
			"p.id AS id",
			"p.name AS name",
			"p.price_cents AS price_cents",
			"p.image_url AS image_url",
			"p.color AS color",
			"p.brand_id AS brand_id",
			"COALESCE(b.name, '') AS brand_name",
			"p.category_id AS category_id",
			"COALESCE(c.name, '') AS category_name",
			"p.created_at AS created_at",
			"p.updated_at AS updated_at",
		).
		From("products p").
		LeftJoin("brands b ON b.id = p.brand_id").
		LeftJoin("categories c ON c.id = p.category_id").
		OrderBy("p.id ASC")

	if filter != nil {
		if len(filter.Ids) > 0 {
			query = query.Where(sq.Eq{"p.id": filter.Ids})
		}

		if len(filter.BrandIds) > 0 {
			query = query.Where(sq.Eq{"p.brand_id": filter.BrandIds})
		}

		if len(filter.CategoryIds) > 0 {
			query = query.Where(sq.Eq{"p.category_id": filter.CategoryIds})
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

	var dals []ProductDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	result := make([]product.Product, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("products").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := sqlx.GetContext(ctx, r.conn, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return n, nil
}

// PricesByIDs resolves the current price of every existing id with a single query.
func (r *ProductRepository) PricesByIDs(ctx context.Context, ids []int64) (map[int64]money.Cents, error) {
	prices := make(map[int64]money.Cents, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	query, args, err := r.sb.
		Select("id", "price_cents").
		From("products").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build price query: %w", err)
	}

	var rows []priceDal
	if err := sqlx.SelectContext(ctx, r.conn, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query product prices: %w", err)
	}

	for _, row := range rows {
		prices[row.Id] = money.Cents(row.PriceCents)
	}

	return prices, nil
}
