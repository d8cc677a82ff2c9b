// Package converters maps HTTP request and response bodies to service models.
package converters

import (
	"strings"

	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/service/models/money"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/store/internal/service/models/product"
)

// OrderRequest is the body of an order create or update. Status is a pointer
// so that an omitted field can be told apart from a submitted one.
type OrderRequest struct {
	CustomerID int64   `json:"customerId" schema:"customerId"`
	Status     *string `json:"status,omitempty" schema:"status"`
	ProductIDs []int64 `json:"productIds" schema:"productIds"`
	Quantities []int   `json:"quantities" schema:"quantities"`
	Version    int64   `json:"version,omitempty" schema:"version"`
}

// OrderInputFromRequest builds the service input. With defaultStatus set, an
// omitted or blank status becomes order.DefaultStatus; otherwise it is passed
// through and rejected by validation.
func OrderInputFromRequest(req OrderRequest, defaultStatus bool) order.OrderInput {
	in := order.OrderInput{
		CustomerID: req.CustomerID,
		ProductIDs: req.ProductIDs,
		Quantities: req.Quantities,
		Version:    req.Version,
	}

	status := ""
	if req.Status != nil {
		status = strings.TrimSpace(*req.Status)
	}
	if status == "" && defaultStatus {
		in.Status = order.DefaultStatus
	} else {
		in.Status = order.Status(status)
	}

	return in
}

// OrderItemResponse is an order line with its amounts formatted for display.
type OrderItemResponse struct {
	orderitem.OrderItem
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

// OrderResponse is an order with its total formatted for display.
type OrderResponse struct {
	order.Order
	Total      string              `json:"total"`
	OrderItems []OrderItemResponse `json:"orderItems"`
}

func OrderItemToResponse(item orderitem.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		OrderItem: item,
		UnitPrice: item.UnitPriceCents.String(),
		LineTotal: item.LineTotalCents.String(),
	}
}

func OrderItemsToResponse(items []orderitem.OrderItem) []OrderItemResponse {
	resp := make([]OrderItemResponse, len(items))
	for i, item := range items {
		resp[i] = OrderItemToResponse(item)
	}

	return resp
}

func OrderToResponse(o order.Order) OrderResponse {
	return OrderResponse{
		Order:      o,
		Total:      o.TotalCents.String(),
		OrderItems: OrderItemsToResponse(o.OrderItems),
	}
}

func OrdersToResponse(orders []order.Order) []OrderResponse {
	resp := make([]OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = OrderToResponse(o)
	}

	return resp
}

// ProductRequest is the body of a product create or update. The price may be
// given either as a decimal string ("12.50") or in cents.
type ProductRequest struct {
	Name       string  `json:"name" schema:"name"`
	Price      *string `json:"price,omitempty" schema:"price"`
	PriceCents *int64  `json:"priceCents,omitempty" schema:"priceCents"`
	ImageURL   string  `json:"imageUrl" schema:"imageUrl"`
	Color      string  `json:"color" schema:"color"`
	BrandID    int64   `json:"brandId" schema:"brandId"`
	CategoryID int64   `json:"categoryId" schema:"categoryId"`
}

// ProductInputFromRequest resolves the price and builds the service input.
// A missing or malformed price is reported as a validation error.
func ProductInputFromRequest(req ProductRequest) (product.ProductInput, error) {
	in := product.ProductInput{
		Name:       req.Name,
		ImageURL:   req.ImageURL,
		Color:      req.Color,
		BrandID:    req.BrandID,
		CategoryID: req.CategoryID,
	}

	ve := &errs.ValidationError{}
	switch {
	case req.Price != nil && strings.TrimSpace(*req.Price) != "":
		cents, err := money.ParseCents(*req.Price)
		if err != nil {
			ve.Add("price", "decimal", "Price must be a number with at most two decimals.")
		}
		in.PriceCents = cents
	case req.PriceCents != nil:
		in.PriceCents = money.Cents(*req.PriceCents)
	default:
		ve.Add("price", "required", "Please enter a price.")
	}

	return in, ve.OrNil()
}

// ProductResponse is a product with its price formatted for display.
type ProductResponse struct {
	product.Product
	Price string `json:"price"`
}

func ProductToResponse(p product.Product) ProductResponse {
	return ProductResponse{Product: p, Price: p.PriceCents.String()}
}

func ProductsToResponse(products []product.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = ProductToResponse(p)
	}

	return resp
}
