package customersvc

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/corray333/backend-labs/store/internal/dal/sqlite"
	"github.com/corray333/backend-labs/store/internal/dal/uow"
	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/customer"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCRUD(t *testing.T) {
	client, err := sqlite.NewClient(filepath.Join(t.TempDir(), "customers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	svc := MustNewCustomerService(WithDB(client.DB()))
	ctx := t.Context()

	created, err := svc.CreateCustomer(ctx, customer.CustomerInput{
		FirstName: " Ann ",
		LastName:  "Lee",
		Email:     "ann@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", created.FirstName)
	assert.Equal(t, "Ann Lee", created.FullName())

	updated, err := svc.UpdateCustomer(ctx, created.ID, customer.CustomerInput{
		FirstName: "Ann",
		LastName:  "Park",
		Email:     "ann.park@example.com",
		Phone:     "+1 555 0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "Park", updated.LastName)

	list, err := svc.ListCustomers(ctx, customer.QueryCustomersModel{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "+1 555 0100", list[0].Phone)

	_, err = svc.UpdateCustomer(ctx, 404, customer.CustomerInput{FirstName: "A", LastName: "B", Email: "a@b.io"})
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, svc.DeleteCustomer(ctx, created.ID))
	require.NoError(t, svc.DeleteCustomer(ctx, created.ID))

	n, err := svc.CountCustomers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCustomerValidation(t *testing.T) {
	client, err := sqlite.NewClient(filepath.Join(t.TempDir(), "customers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	svc := MustNewCustomerService(WithDB(client.DB()))

	_, err = svc.CreateCustomer(t.Context(), customer.CustomerInput{FirstName: "  ", Email: "nope"})
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)

	fields := map[string]string{}
	for _, f := range ve.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "First name is required.", fields["firstName"])
	assert.Equal(t, "Last name is required.", fields["lastName"])
	assert.Equal(t, "Email is not a valid address.", fields["email"])
}

func TestDeleteCustomerWithOrders(t *testing.T) {
	client, err := sqlite.NewClient(filepath.Join(t.TempDir(), "customers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	svc := MustNewCustomerService(WithDB(client.DB()))
	ctx := t.Context()

	c, err := svc.CreateCustomer(ctx, customer.CustomerInput{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"})
	require.NoError(t, err)

	now := time.Now().UTC()
	_, err = uow.NewUnitOfWork(client.DB()).OrderRepository().Insert(ctx, order.Order{
		CustomerID: c.ID,
		OrderDate:  now,
		Status:     order.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteCustomer(ctx, c.ID), errs.ErrInUse)
}
