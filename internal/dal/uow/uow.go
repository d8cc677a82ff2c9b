package uow

import (
	"context"
	"database/sql"
	"errors"

	"github.com/corray333/backend-labs/store/internal/dal/interfaces/ibrandrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/icategoryrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iproductrepo"
	brandrepo "github.com/corray333/backend-labs/store/internal/dal/repositories/brand/sqlrepo"
	categoryrepo "github.com/corray333/backend-labs/store/internal/dal/repositories/category/sqlrepo"
	customerrepo "github.com/corray333/backend-labs/store/internal/dal/repositories/customer/sqlrepo"
	orderrepo "github.com/corray333/backend-labs/store/internal/dal/repositories/order/sqlrepo"
	orderitemrepo "github.com/corray333/backend-labs/store/internal/dal/repositories/orderitem/sqlrepo"
	productrepo "github.com/corray333/backend-labs/store/internal/dal/repositories/product/sqlrepo"
	"github.com/jmoiron/sqlx"
)

// UnitOfWork groups repositories that share one transaction once Begin is called.
// Before Begin the repositories run directly on the database handle.
type UnitOfWork struct {
	db *sqlx.DB
	tx *sqlx.Tx

	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	productRepo   iproductrepo.IProductRepository
	customerRepo  icustomerrepo.ICustomerRepository
	brandRepo     ibrandrepo.IBrandRepository
	categoryRepo  icategoryrepo.ICategoryRepository
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	u := &UnitOfWork{db: db}
	u.bind(db)

	return u
}

func (u *UnitOfWork) bind(conn sqlx.ExtContext) {
	u.orderRepo = orderrepo.NewOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewOrderItemRepository(conn)
	u.productRepo = productrepo.NewProductRepository(conn)
	u.customerRepo = customerrepo.NewCustomerRepository(conn)
	u.brandRepo = brandrepo.NewBrandRepository(conn)
	u.categoryRepo = categoryrepo.NewCategoryRepository(conn)
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *UnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *UnitOfWork) CustomerRepository() icustomerrepo.ICustomerRepository {
	return u.customerRepo
}

func (u *UnitOfWork) BrandRepository() ibrandrepo.IBrandRepository {
	return u.brandRepo
}

func (u *UnitOfWork) CategoryRepository() icategoryrepo.ICategoryRepository {
	return u.categoryRepo
}

// Begin opens a transaction and rebinds every repository to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}

	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *UnitOfWork) Commit() error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit()
}

// Rollback aborts the transaction. Calling it after Commit is a no-op, so it
// can be deferred unconditionally.
func (u *UnitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}
