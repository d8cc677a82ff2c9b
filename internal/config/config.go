package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/corray333/backend-labs/store/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by storage.driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func setDefaults() {
	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("server.http.cors.allowed_origins", []string{"*"})
	viper.SetDefault("server.http.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("server.http.cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-Id"})
	viper.SetDefault("server.http.cors.max_age", 300)
	viper.SetDefault("server.grpc.port", "9090")
	viper.SetDefault("storage.driver", DriverSQLite)
	viper.SetDefault("storage.sqlite.path", "store.db")
	viper.SetDefault("storage.postgres.max_conns", 10)
	viper.SetDefault("rabbitmq.enabled", false)
	viper.SetDefault("rabbitmq.queue", "store.orders.events")
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.jaeger_endpoint", "http://jaeger:14268/api/traces")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("health.interval_seconds", 15)
}

// Load reads ./.env when present, then config.yaml from /etc/store-svc or the
// working directory. STORE_* environment variables override file values.
func Load() error {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error while loading .env file: %w", err)
	}

	setDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/store-svc")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("STORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error while reading config file: %w", err)
		}
	}

	switch driver := viper.GetString("storage.driver"); driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported storage.driver %q", driver)
	}

	return nil
}

func MustInit() {
	if err := Load(); err != nil {
		panic(err.Error())
	}
	SetupLogger()
}

func SetupLogger() {
	handler := logger.NewHandler(&logger.Options{
		Level:  logger.ParseLevel(viper.GetString("log.level")),
		Format: viper.GetString("log.format"),
	})
	log := slog.New(handler)
	slog.SetDefault(log)
}
