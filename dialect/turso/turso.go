// Package turso adapts the turso client to the generic SQLite dialect.
//
// Two variants are registered: "sqlite.turso" and "sqlite.aioturso". They translate URLs the
// same way and differ only in the async capability flag. Both compose the generic
// [sqlite.Dialect] and override what the turso client does not support: isolation level pragmas
// and user defined SQL functions.
package turso

import (
	"context"

	"github.com/pressly/sqlturso/database"
	"github.com/pressly/sqlturso/dialect/sqlite"
	"github.com/pressly/sqlturso/internal/connargs"
)

// Variant selects the capability flags of a turso dialect.
type Variant struct {
	Name   string
	Driver string
	Async  bool
}

var (
	Sync  = Variant{Name: "sqlite.turso", Driver: "turso"}
	Async = Variant{Name: "sqlite.aioturso", Driver: "turso", Async: true}
)

func init() {
	for _, v := range []Variant{Sync, Async} {
		v := v
		database.Register(v.Name, func() database.Dialect { return New(v) })
	}
}

// Dialect is a turso dialect variant.
type Dialect struct {
	variant Variant
	base    *sqlite.Dialect
}

var _ database.Dialect = (*Dialect)(nil)

// New returns the dialect for v. Options configure the wrapped generic dialect, which only
// handles connections that were not opened by the turso client.
func New(v Variant, opts ...sqlite.Option) *Dialect {
	return &Dialect{
		variant: v,
		base:    sqlite.New(opts...),
	}
}

func (d *Dialect) Name() string   { return d.variant.Name }
func (d *Dialect) Driver() string { return d.variant.Driver }
func (d *Dialect) IsAsync() bool  { return d.variant.Async }

// SupportsStatementCache mirrors the generic dialect.
func (d *Dialect) SupportsStatementCache() bool { return d.base.SupportsStatementCache() }

// DBAPI describes the turso client. The client reports neither a parameter style nor a SQLite
// version, and has no error type of its own, so those are filled in here.
func (d *Dialect) DBAPI() *database.DBAPI {
	return &database.DBAPI{
		Paramstyle:        "qmark",
		SQLiteVersionInfo: [3]int{3, 47, 1},
		IsError:           sqlite.IsError,
		Connect:           connect,
	}
}

func (d *Dialect) CreateConnectArgs(u *database.URL) (database.ConnectArgs, error) {
	return connargs.Build(u)
}

// OnConnect skips connections opened by the turso client, which cannot register SQL functions.
// Any other connection gets the generic SQLite setup.
func (d *Dialect) OnConnect(ctx context.Context, conn *database.Conn) error {
	if conn.Kind == database.KindTurso {
		return nil
	}
	return d.base.OnConnect(ctx, conn)
}

// The turso client has no isolation level pragmas; these never touch the connection.

func (d *Dialect) GetIsolationLevel(context.Context, *database.Conn) (database.IsolationLevel, error) {
	return database.IsolationNone, nil
}

func (d *Dialect) GetDefaultIsolationLevel(context.Context, *database.Conn) (database.IsolationLevel, error) {
	return database.IsolationNone, nil
}

func (d *Dialect) SetIsolationLevel(context.Context, *database.Conn, database.IsolationLevel) error {
	return nil
}
