// Package sqlite opens the embedded pure-Go SQLite database used for local
// runs and tests.
package sqlite

import (
	"fmt"

	"github.com/corray333/backend-labs/store/internal/dal/migrations"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Client represents a SQLite client.
type Client struct {
	db *sqlx.DB
}

// DB returns the underlying database handle.
func (c *Client) DB() *sqlx.DB {
	return c.db
}

// Close closes the database.
func (c *Client) Close() error {
	return c.db.Close()
}

// NewClient opens (creating if needed) the database file at path and migrates it.
func NewClient(path string) (*Client, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite",
		path,
	)

	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection serialises writers and keeps pragmas in effect.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := migrations.Up(db.DB, migrations.DialectSQLite); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Client{db: db}, nil
}

// MustNewClient is NewClient that panics on failure.
func MustNewClient(path string) *Client {
	c, err := NewClient(path)
	if err != nil {
		panic(err)
	}

	return c
}
