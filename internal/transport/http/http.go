package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/backend-labs/store/internal/service/models/brand"
	"github.com/corray333/backend-labs/store/internal/service/models/category"
	"github.com/corray333/backend-labs/store/internal/service/models/customer"
	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/store/internal/service/models/product"
	"github.com/corray333/backend-labs/store/internal/service/services/dashboardsvc"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/brands"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/categories"
	createorder "github.com/corray333/backend-labs/store/internal/transport/http/v1/create_order"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/customers"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/dashboard"
	deleteorder "github.com/corray333/backend-labs/store/internal/transport/http/v1/delete_order"
	getorder "github.com/corray333/backend-labs/store/internal/transport/http/v1/get_order"
	listorderitems "github.com/corray333/backend-labs/store/internal/transport/http/v1/list_order_items"
	listorders "github.com/corray333/backend-labs/store/internal/transport/http/v1/list_orders"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/products"
	updateorder "github.com/corray333/backend-labs/store/internal/transport/http/v1/update_order"
	"github.com/corray333/backend-labs/store/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/store/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/corray333/backend-labs/store/docs"
)

type orderService interface {
	CreateOrder(ctx context.Context, in order.OrderInput) (order.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, in order.OrderInput) (order.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	GetOrder(ctx context.Context, orderID int64) (order.Order, error)
	ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	ListOrderItems(ctx context.Context, filter orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error)
}

type catalogService interface {
	ListBrands(ctx context.Context, filter brand.QueryBrandsModel) ([]brand.Brand, error)
	GetBrand(ctx context.Context, id int64) (brand.Brand, error)
	CreateBrand(ctx context.Context, in brand.BrandInput) (brand.Brand, error)
	UpdateBrand(ctx context.Context, id int64, in brand.BrandInput) (brand.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	ListCategories(ctx context.Context, filter category.QueryCategoriesModel) ([]category.Category, error)
	GetCategory(ctx context.Context, id int64) (category.Category, error)
	CreateCategory(ctx context.Context, in category.CategoryInput) (category.Category, error)
	UpdateCategory(ctx context.Context, id int64, in category.CategoryInput) (category.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, filter product.QueryProductsModel) ([]product.Product, error)
	GetProduct(ctx context.Context, id int64) (product.Product, error)
	CreateProduct(ctx context.Context, in product.ProductInput) (product.Product, error)
	UpdateProduct(ctx context.Context, id int64, in product.ProductInput) (product.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ValidateProduct(in product.ProductInput) error
}

type customerService interface {
	ListCustomers(ctx context.Context, filter customer.QueryCustomersModel) ([]customer.Customer, error)
	GetCustomer(ctx context.Context, id int64) (customer.Customer, error)
	CreateCustomer(ctx context.Context, in customer.CustomerInput) (customer.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, in customer.CustomerInput) (customer.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type dashboardService interface {
	Summary(ctx context.Context) (dashboardsvc.Summary, error)
}

// Services are the handlers' dependencies.
type Services struct {
	Orders    orderService
	Catalog   catalogService
	Customers customerService
	Dashboard dashboardService
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	services Services
}

func NewHTTPTransport(services Services) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		services: services,
	}
}

// Handler exposes the router, e.g. for httptest.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	h.router.Route("/api", func(r chi.Router) {
		r.Use(trace.NewTraceMiddleware)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}", h.updateOrder)
			r.Delete("/{id}", h.deleteOrder)
		})
		r.Get("/order-items", h.listOrderItems)

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) { brands.List(w, r, h.services.Catalog) })
			r.Post("/", func(w http.ResponseWriter, r *http.Request) { brands.Create(w, r, h.services.Catalog) })
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) { brands.Get(w, r, h.services.Catalog) })
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) { brands.Update(w, r, h.services.Catalog) })
			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) { brands.Delete(w, r, h.services.Catalog) })
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) { categories.List(w, r, h.services.Catalog) })
			r.Post("/", func(w http.ResponseWriter, r *http.Request) { categories.Create(w, r, h.services.Catalog) })
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) { categories.Get(w, r, h.services.Catalog) })
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) { categories.Update(w, r, h.services.Catalog) })
			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) { categories.Delete(w, r, h.services.Catalog) })
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) { products.List(w, r, h.services.Catalog) })
			r.Post("/", func(w http.ResponseWriter, r *http.Request) { products.Create(w, r, h.services.Catalog) })
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) { products.Get(w, r, h.services.Catalog) })
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) { products.Update(w, r, h.services.Catalog) })
			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) { products.Delete(w, r, h.services.Catalog) })
		})
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) { customers.List(w, r, h.services.Customers) })
			r.Post("/", func(w http.ResponseWriter, r *http.Request) { customers.Create(w, r, h.services.Customers) })
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) { customers.Get(w, r, h.services.Customers) })
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) { customers.Update(w, r, h.services.Customers) })
			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) { customers.Delete(w, r, h.services.Customers) })
		})

		r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
			dashboard.Summary(w, r, h.services.Dashboard)
		})
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.services.Orders)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.services.Orders)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.services.Orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.services.Orders)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.services.Orders)
}

func (h *HTTPTransport) listOrderItems(w http.ResponseWriter, r *http.Request) {
	listorderitems.ListOrderItems(w, r, h.services.Orders)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:              "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
