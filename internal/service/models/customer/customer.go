package customer

import "time"

// Customer is a person who places orders.
type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// QueryCustomersModel represents filter parameters for querying customers.
type QueryCustomersModel struct {
	Ids    []int64 `json:"ids,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}

// CustomerInput is the writable part of a customer.
type CustomerInput struct {
	FirstName string `json:"firstName" schema:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" schema:"lastName" validate:"required,max=100"`
	Email     string `json:"email" schema:"email" validate:"required,email"`
	Phone     string `json:"phone" schema:"phone" validate:"max=30"`
}
