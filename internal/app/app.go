package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/store/internal/config"
	"github.com/corray333/backend-labs/store/internal/dal/postgres"
	"github.com/corray333/backend-labs/store/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/store/internal/dal/repositories/events"
	"github.com/corray333/backend-labs/store/internal/dal/sqlite"
	"github.com/corray333/backend-labs/store/internal/otel"
	"github.com/corray333/backend-labs/store/internal/service/services/catalogsvc"
	"github.com/corray333/backend-labs/store/internal/service/services/customersvc"
	"github.com/corray333/backend-labs/store/internal/service/services/dashboardsvc"
	"github.com/corray333/backend-labs/store/internal/service/services/ordersvc"
	grpctransport "github.com/corray333/backend-labs/store/internal/transport/grpc"
	httptransport "github.com/corray333/backend-labs/store/internal/transport/http"
	"github.com/corray333/backend-labs/store/internal/worker/health"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

type closer interface {
	Close() error
}

// App represents the application.
type App struct {
	db             *sqlx.DB
	dbCloser       closer
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
	httpTransport  *httptransport.HTTPTransport
	grpcTransport  *grpctransport.GRPCTransport
	healthWorker   *health.Worker
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	a := &App{}

	if viper.GetBool("tracing.enabled") {
		a.otelController = otel.MustInitOtel()
	}

	switch viper.GetString("storage.driver") {
	case config.DriverPostgres:
		client := postgres.MustNewClient()
		a.db, a.dbCloser = client.DB(), client
	default:
		client := sqlite.MustNewClient(viper.GetString("storage.sqlite.path"))
		a.db, a.dbCloser = client.DB(), client
	}
	slog.Info("Database ready", "driver", viper.GetString("storage.driver"))

	orderSvc := a.newOrderService()
	catalogSvc := catalogsvc.MustNewCatalogService(catalogsvc.WithDB(a.db))
	customerSvc := customersvc.MustNewCustomerService(customersvc.WithDB(a.db))
	dashboardSvc := dashboardsvc.NewDashboardService(catalogSvc, customerSvc, orderSvc)

	a.httpTransport = httptransport.NewHTTPTransport(httptransport.Services{
		Orders:    orderSvc,
		Catalog:   catalogSvc,
		Customers: customerSvc,
		Dashboard: dashboardSvc,
	})
	a.httpTransport.RegisterRoutes()

	grpcTransport, err := grpctransport.NewGRPCTransport()
	if err != nil {
		panic(err)
	}
	a.grpcTransport = grpcTransport
	a.healthWorker = health.NewWorker(a.db, grpcTransport)

	return a
}

func (a *App) newOrderService() *ordersvc.OrderService {
	if !viper.GetBool("rabbitmq.enabled") {
		return ordersvc.MustNewOrderService(ordersvc.WithDB(a.db))
	}

	a.rabbitClient = rabbitmq.MustNewClient()
	eventRepo := events.MustNewEventRabbitMQRepository(a.rabbitClient, viper.GetString("rabbitmq.queue"))

	return ordersvc.MustNewOrderService(
		ordersvc.WithDB(a.db),
		ordersvc.WithEventRepository(eventRepo),
	)
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.healthWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server", "port", viper.GetString("server.http.port"))
		if err := a.httpTransport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		if err := a.grpcTransport.Run(); err != nil {
			slog.Error("gRPC server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	a.healthWorker.Stop()
	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpTransport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.grpcTransport.Shutdown(ctx); err != nil {
		slog.Error("gRPC server shutdown error", "error", err)
	} else {
		slog.Info("gRPC server stopped gracefully")
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ close error", "error", err)
		}
	}

	if err := a.dbCloser.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	if a.otelController != nil {
		if err := a.otelController.Shutdown(ctx); err != nil {
			slog.Error("Tracer shutdown error", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
}
