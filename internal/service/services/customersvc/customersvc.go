package customersvc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/store/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/store/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/store/internal/dal/uow"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/customer"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/validation"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var messages = validation.Messages{
	"FirstName.required": "First name is required.",
	"LastName.required":  "Last name is required.",
	"Email.required":     "Email is required.",
	"Email.email":        "Email is not a valid address.",
	"max":                "Value is too long.",
}

// CustomerService is a service for managing customers.
type CustomerService struct {
	newUOW   func() unitOfWork
	validate *validatorv10.Validate
	nowFunc  func() time.Time
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomerRepository() icustomerrepo.ICustomerRepository
	OrderRepository() iorderrepo.IOrderRepository
}

// option is a function that configures the CustomerService.
type option func(*CustomerService)

// MustNewCustomerService creates a new CustomerService.
func MustNewCustomerService(opts ...option) *CustomerService {
	s := &CustomerService{
		validate: validation.New(),
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("customersvc: no database configured")
	}

	return s
}

// WithDB runs every operation against db.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDB(db *sqlx.DB) option {
	return func(s *CustomerService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(db)
		}
	}
}

func (s *CustomerService) ListCustomers(
	ctx context.Context,
	filter customer.QueryCustomersModel,
) ([]customer.Customer, error) {
	return s.newUOW().CustomerRepository().Query(ctx, &filter)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (customer.Customer, error) {
	return s.newUOW().CustomerRepository().Get(ctx, id)
}

func (s *CustomerService) CountCustomers(ctx context.Context) (int64, error) {
	return s.newUOW().CustomerRepository().Count(ctx)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, in customer.CustomerInput) (customer.Customer, error) {
	in = normalize(in)
	if err := validation.Struct(s.validate, in, messages); err != nil {
		return customer.Customer{}, err
	}

	now := s.nowFunc()
	c, err := s.newUOW().CustomerRepository().Insert(ctx, customer.Customer{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return customer.Customer{}, err
	}

	slog.Info("Customer created", "customer_id", c.ID)

	return c, nil
}

func (s *CustomerService) UpdateCustomer(
	ctx context.Context,
	id int64,
	in customer.CustomerInput,
) (customer.Customer, error) {
	in = normalize(in)
	if err := validation.Struct(s.validate, in, messages); err != nil {
		return customer.Customer{}, err
	}

	repo := s.newUOW().CustomerRepository()
	current, err := repo.Get(ctx, id)
	if err != nil {
		return customer.Customer{}, err
	}

	current.FirstName = in.FirstName
	current.LastName = in.LastName
	current.Email = in.Email
	current.Phone = in.Phone
	current.UpdatedAt = s.nowFunc()

	return repo.Update(ctx, current)
}

// DeleteCustomer removes a customer without orders. A missing customer is not an error.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "CustomerService.DeleteCustomer")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := work.Rollback(); err != nil {
			slog.Error("Failed to rollback transaction", "error", err)
		}
	}()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{CustomerIds: []int64{id}, Limit: 1})
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		return fmt.Errorf("customer %d has orders: %w", id, errs.ErrInUse)
	}

	if _, err := work.CustomerRepository().Delete(ctx, id); err != nil {
		return err
	}

	return work.Commit()
}

func normalize(in customer.CustomerInput) customer.CustomerInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	return in
}
