// Package catalogsvc manages the reference data orders point at: brands,
// categories and products.
package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/store/internal/dal/interfaces/ibrandrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/icategoryrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backend-labs/store/internal/dal/uow"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/brand"
	"github.com/corray333/backend-labs/store/internal/service/models/category"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/store/internal/service/models/product"
	"github.com/corray333/backend-labs/store/internal/service/validation"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var messages = validation.Messages{
	"Name.required":   "Name is required.",
	"Name.max":        "Name is too long.",
	"FoundedYear.gte": "Founded year must not be negative.",
	"FoundedYear.lte": "Founded year is out of range.",
	"PriceCents.gte":  "Price must not be negative.",
	"BrandID.gt":      "Please select a brand.",
	"CategoryID.gt":   "Please select a category.",
	"ImageURL.max":    "Image reference is too long.",
	"Color.max":       "Color is too long.",
	"Description.max": "Description is too long.",
}

// CatalogService is a service for managing brands, categories and products.
type CatalogService struct {
	newUOW   func() unitOfWork
	validate *validatorv10.Validate
	nowFunc  func() time.Time
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BrandRepository() ibrandrepo.IBrandRepository
	CategoryRepository() icategoryrepo.ICategoryRepository
	ProductRepository() iproductrepo.IProductRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{
		validate: validation.New(),
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("catalogsvc: no database configured")
	}

	return s
}

// WithDB runs every operation against db.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDB(db *sqlx.DB) option {
	return func(s *CatalogService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(db)
		}
	}
}

// WithClock overrides the time source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *CatalogService) {
		s.nowFunc = now
	}
}

func (s *CatalogService) ListBrands(ctx context.Context, filter brand.QueryBrandsModel) ([]brand.Brand, error) {
	return s.newUOW().BrandRepository().Query(ctx, &filter)
}

func (s *CatalogService) GetBrand(ctx context.Context, id int64) (brand.Brand, error) {
	return s.newUOW().BrandRepository().Get(ctx, id)
}

func (s *CatalogService) CountBrands(ctx context.Context) (int64, error) {
	return s.newUOW().BrandRepository().Count(ctx)
}

func (s *CatalogService) CreateBrand(ctx context.Context, in brand.BrandInput) (brand.Brand, error) {
	if err := validation.Struct(s.validate, in, messages); err != nil {
		return brand.Brand{}, err
	}

	now := s.nowFunc()
	b, err := s.newUOW().BrandRepository().Insert(ctx, brand.Brand{
		Name:        in.Name,
		Description: in.Description,
		FoundedYear: in.FoundedYear,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return brand.Brand{}, err
	}

	slog.Info("Brand created", "brand_id", b.ID)

	return b, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id int64, in brand.BrandInput) (brand.Brand, error) {
	if err := validation.Struct(s.validate, in, messages); err != nil {
		return brand.Brand{}, err
	}

	repo := s.newUOW().BrandRepository()
	current, err := repo.Get(ctx, id)
	if err != nil {
		return brand.Brand{}, err
	}

	current.Name = in.Name
	current.Description = in.Description
	current.FoundedYear = in.FoundedYear
	current.UpdatedAt = s.nowFunc()

	return repo.Update(ctx, current)
}

// DeleteBrand removes a brand no product uses. A missing brand is not an error.
func (s *CatalogService) DeleteBrand(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.DeleteBrand")
	defer span.End()

	return s.deleteUnused(ctx, "brand", id,
		func(work unitOfWork) (bool, error) {
			used, err := work.ProductRepository().Query(ctx, &product.QueryProductsModel{BrandIds: []int64{id}, Limit: 1})

			return len(used) > 0, err
		},
		func(work unitOfWork) (bool, error) {
			return work.BrandRepository().Delete(ctx, id)
		},
	)
}

func (s *CatalogService) ListCategories(
	ctx context.Context,
	filter category.QueryCategoriesModel,
) ([]category.Category, error) {
	return s.newUOW().CategoryRepository().Query(ctx, &filter)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (category.Category, error) {
	return s.newUOW().CategoryRepository().Get(ctx, id)
}

func (s *CatalogService) CountCategories(ctx context.Context) (int64, error) {
	return s.newUOW().CategoryRepository().Count(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in category.CategoryInput) (category.Category, error) {
	if err := validation.Struct(s.validate, in, messages); err != nil {
		return category.Category{}, err
	}

	now := s.nowFunc()
	c, err := s.newUOW().CategoryRepository().Insert(ctx, category.Category{
		Name:      in.Name,
		IsActive:  in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return category.Category{}, err
	}

	slog.Info("Category created", "category_id", c.ID)

	return c, nil
}

func (s *CatalogService) UpdateCategory(
	ctx context.Context,
	id int64,
	in category.CategoryInput,
) (category.Category, error) {
	if err := validation.Struct(s.validate, in, messages); err != nil {
		return category.Category{}, err
	}

	repo := s.newUOW().CategoryRepository()
	current, err := repo.Get(ctx, id)
	if err != nil {
		return category.Category{}, err
	}

	current.Name = in.Name
	current.IsActive = in.IsActive
	current.UpdatedAt = s.nowFunc()

	return repo.Update(ctx, current)
}

// DeleteCategory removes a category no product uses. A missing category is not an error.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.DeleteCategory")
	defer span.End()

	return s.deleteUnused(ctx, "category", id,
		func(work unitOfWork) (bool, error) {
			used, err := work.ProductRepository().Query(ctx, &product.QueryProductsModel{CategoryIds: []int64{id}, Limit: 1})

			return len(used) > 0, err
		},
		func(work unitOfWork) (bool, error) {
			return work.CategoryRepository().Delete(ctx, id)
		},
	)
}

func (s *CatalogService) ListProducts(ctx context.Context, filter product.QueryProductsModel) ([]product.Product, error) {
	return s.newUOW().ProductRepository().Query(ctx, &filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (product.Product, error) {
	return s.newUOW().ProductRepository().Get(ctx, id)
}

func (s *CatalogService) CountProducts(ctx context.Context) (int64, error) {
	return s.newUOW().ProductRepository().Count(ctx)
}

// ValidateProduct reports every violated rule of in without touching storage.
func (s *CatalogService) ValidateProduct(in product.ProductInput) error {
	return validation.Struct(s.validate, in, messages)
}

// CreateProduct stores a product after checking its brand and category exist.
func (s *CatalogService) CreateProduct(ctx context.Context, in product.ProductInput) (product.Product, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if err := s.ValidateProduct(in); err != nil {
		return product.Product{}, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return product.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(work)

	if err := checkReferences(ctx, work, in); err != nil {
		return product.Product{}, err
	}

	now := s.nowFunc()
	created, err := work.ProductRepository().Insert(ctx, product.Product{
		Name:       in.Name,
		PriceCents: in.PriceCents,
		ImageURL:   product.NormalizeImageURL(in.ImageURL),
		Color:      in.Color,
		BrandID:    in.BrandID,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return product.Product{}, err
	}

	created, err = work.ProductRepository().Get(ctx, created.ID)
	if err != nil {
		return product.Product{}, err
	}

	if err := work.Commit(); err != nil {
		return product.Product{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Product created", "product_id", created.ID, "price", created.PriceCents.String())

	return created, nil
}

// UpdateProduct overwrites a product. Existing order lines keep the price they
// were written with.
func (s *CatalogService) UpdateProduct(
	ctx context.Context,
	id int64,
	in product.ProductInput,
) (product.Product, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	if err := s.ValidateProduct(in); err != nil {
		return product.Product{}, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return product.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(work)

	current, err := work.ProductRepository().Get(ctx, id)
	if err != nil {
		return product.Product{}, err
	}

	if err := checkReferences(ctx, work, in); err != nil {
		return product.Product{}, err
	}

	current.Name = in.Name
	current.PriceCents = in.PriceCents
	current.ImageURL = product.NormalizeImageURL(in.ImageURL)
	current.Color = in.Color
	current.BrandID = in.BrandID
	current.CategoryID = in.CategoryID
	current.UpdatedAt = s.nowFunc()
	if _, err := work.ProductRepository().Update(ctx, current); err != nil {
		return product.Product{}, err
	}

	updated, err := work.ProductRepository().Get(ctx, id)
	if err != nil {
		return product.Product{}, err
	}

	if err := work.Commit(); err != nil {
		return product.Product{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// DeleteProduct removes a product no order line uses. Unlike brands and
// categories, deleting a missing product reports errs.ErrNotFound.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(work)

	if _, err := work.ProductRepository().Get(ctx, id); err != nil {
		return err
	}

	used, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		ProductIds: []int64{id},
		Limit:      1,
	})
	if err != nil {
		return err
	}
	if len(used) > 0 {
		return fmt.Errorf("product %d is on order lines: %w", id, errs.ErrInUse)
	}

	if _, err := work.ProductRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := work.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Product deleted", "product_id", id)

	return nil
}

func (s *CatalogService) deleteUnused(
	ctx context.Context,
	kind string,
	id int64,
	inUse func(unitOfWork) (bool, error),
	remove func(unitOfWork) (bool, error),
) error {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(work)

	used, err := inUse(work)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%s %d is used by products: %w", kind, id, errs.ErrInUse)
	}

	deleted, err := remove(work)
	if err != nil {
		return err
	}

	if err := work.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if deleted {
		slog.Info("Catalog entry deleted", "kind", kind, "id", id)
	}

	return nil
}

func checkReferences(ctx context.Context, work unitOfWork, in product.ProductInput) error {
	if _, err := work.BrandRepository().Get(ctx, in.BrandID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("brand %d: %w", in.BrandID, errs.ErrInvalidReference)
		}

		return err
	}

	if _, err := work.CategoryRepository().Get(ctx, in.CategoryID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("category %d: %w", in.CategoryID, errs.ErrInvalidReference)
		}

		return err
	}

	return nil
}

func rollback(work unitOfWork) {
	if err := work.Rollback(); err != nil {
		slog.Error("Failed to rollback transaction", "error", err)
	}
}
