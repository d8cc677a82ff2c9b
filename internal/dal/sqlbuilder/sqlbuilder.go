// Package sqlbuilder picks the squirrel placeholder format for a connection.
package sqlbuilder

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// For returns a statement builder whose placeholders match conn's driver.
func For(conn sqlx.ExtContext) sq.StatementBuilderType {
	if sqlx.BindType(conn.DriverName()) == sqlx.DOLLAR {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}

	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
