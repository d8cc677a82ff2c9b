package icustomerrepo

import (
	"context"

	"github.com/corray333/backend-labs/store/internal/service/models/customer"
)

// ICustomerRepository is an interface for the customer repository.
type ICustomerRepository interface {
	Insert(ctx context.Context, c customer.Customer) (customer.Customer, error)
	Get(ctx context.Context, id int64) (customer.Customer, error)
	Update(ctx context.Context, c customer.Customer) (customer.Customer, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Query(ctx context.Context, filter *customer.QueryCustomersModel) ([]customer.Customer, error)
	Count(ctx context.Context) (int64, error)
}
