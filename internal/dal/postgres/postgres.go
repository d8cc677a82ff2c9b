package postgres

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/corray333/backend-labs/store/internal/dal/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

// Client represents a Postgres client.
type Client struct {
	pool *pgxpool.Pool
	db   *sqlx.DB
}

// Pool returns the underlying connection pool.
func (p *Client) Pool() *pgxpool.Pool {
	return p.pool
}

// DB returns a database/sql handle backed by the pool.
func (p *Client) DB() *sqlx.DB {
	return p.db
}

// Close closes the database connection for graceful shutdown.
func (p *Client) Close() error {
	err := p.db.Close()
	p.pool.Close()

	return err
}

// ConnString builds the connection string from the STORE_PG_* environment.
func ConnString() string {
	port := os.Getenv("STORE_PG_PORT")
	if port == "" {
		port = "5432"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("STORE_PG_HOST"),
		port,
		os.Getenv("STORE_PG_USER"),
		os.Getenv("STORE_PG_PASSWORD"),
		os.Getenv("STORE_PG_DB"),
	)
}

// MustNewClient creates a new Postgres client and migrates the schema.
func MustNewClient() *Client {
	config, err := pgxpool.ParseConfig(ConnString())
	if err != nil {
		panic(err)
	}

	if maxConns := viper.GetInt32("storage.postgres.max_conns"); maxConns > 0 {
		config.MaxConns = maxConns
	}
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		panic(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		panic(err)
	}

	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")
	if err := migrations.Up(db.DB, migrations.DialectPostgres); err != nil {
		panic(err)
	}

	return &Client{
		pool: pool,
		db:   db,
	}
}
