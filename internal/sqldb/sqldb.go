// Package sqldb opens database/sql handles for the drivers this module wraps.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Open opens dsn with the named driver and verifies the connection with a ping.
//
// In-memory SQLite databases exist per connection, so their pool is limited to a single
// connection; otherwise every pooled connection would see a different, empty database.
func Open(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	switch driverName {
	case "sqlite", "libsql":
	default:
		return nil, fmt.Errorf("unsupported driver %s", driverName)
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}
	if IsMemory(dsn) {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to connect: %w", err), db.Close())
	}
	return db, nil
}

// IsMemory reports whether dsn names a private in-memory SQLite database.
func IsMemory(dsn string) bool {
	name, _, _ := strings.Cut(dsn, "?")
	name = strings.TrimPrefix(name, "file:")
	return name == ":memory:" || name == ""
}
