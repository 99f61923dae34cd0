// Package sqlite implements the generic SQLite dialect on top of the CGo-free modernc.org/sqlite
// driver. Other SQLite-compatible dialects wrap it and override what their driver lacks.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pressly/sqlturso/database"
	"github.com/pressly/sqlturso/internal/connargs"
	"github.com/pressly/sqlturso/internal/sqldb"
	"modernc.org/sqlite"
)

const (
	// Name is the registry name of the generic dialect.
	Name = "sqlite"
	// DriverName is the database/sql driver name registered by modernc.org/sqlite.
	DriverName = "sqlite"
)

func init() {
	database.Register(Name, func() database.Dialect { return New() })
}

// Option configures a [Dialect].
type Option func(*Dialect)

// WithIsolationLevel makes OnConnect switch every new connection to level.
func WithIsolationLevel(level database.IsolationLevel) Option {
	return func(d *Dialect) { d.isolationLevel = level }
}

// Dialect is the generic SQLite dialect.
type Dialect struct {
	isolationLevel database.IsolationLevel
}

var _ database.Dialect = (*Dialect)(nil)

// New returns the generic SQLite dialect.
func New(opts ...Option) *Dialect {
	d := &Dialect{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (*Dialect) Name() string                 { return Name }
func (*Dialect) Driver() string               { return DriverName }
func (*Dialect) IsAsync() bool                { return false }
func (*Dialect) SupportsStatementCache() bool { return true }

// DBAPI describes modernc.org/sqlite. The version is read from the embedded engine once.
func (*Dialect) DBAPI() *database.DBAPI {
	return &database.DBAPI{
		Paramstyle:        "qmark",
		SQLiteVersionInfo: versionInfo(),
		IsError:           IsError,
		Connect:           connect,
	}
}

// IsError reports whether err is, or wraps, a SQLite engine error.
func IsError(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr)
}

var driverOptions = []connargs.Option{
	{Key: "uri", Type: connargs.Bool},
	{Key: "timeout", Type: connargs.Float},
	{Key: "isolation_level", Type: connargs.String},
	{Key: "detect_types", Type: connargs.Int},
	{Key: "check_same_thread", Type: connargs.Bool},
	{Key: "cached_statements", Type: connargs.Int},
}

// CreateConnectArgs resolves the database file of u. Driver options become keyword arguments;
// with uri=true the remaining query options are kept on a "file:" URI.
func (*Dialect) CreateConnectArgs(u *database.URL) (database.ConnectArgs, error) {
	kw := make(map[string]any)
	for _, opt := range driverOptions {
		if err := connargs.CoerceInto(u.Query, opt.Key, opt.Type, kw); err != nil {
			return database.ConnectArgs{}, err
		}
	}
	isURI, _ := kw["uri"].(bool)
	delete(kw, "uri")

	target := u.Database
	if target == "" {
		target = connargs.MemoryTarget
	}
	if isURI {
		query := make(map[string]any, len(u.Query))
		for k, v := range u.Query {
			query[k] = v
		}
		for _, opt := range driverOptions {
			delete(query, opt.Key)
		}
		target = "file:" + target
		if q := connargs.EncodeQuery(query); q != "" {
			target += "?" + q
		}
	} else if target != connargs.MemoryTarget {
		abs, err := filepath.Abs(target)
		if err != nil {
			return database.ConnectArgs{}, fmt.Errorf("failed to resolve database path %q: %w", target, err)
		}
		target = abs
	}
	return database.ConnectArgs{
		Positional: []string{target},
		Keyword:    kw,
	}, nil
}

func (d *Dialect) OnConnect(ctx context.Context, conn *database.Conn) error {
	if err := registerFunctions(); err != nil {
		return err
	}
	if d.isolationLevel != database.IsolationNone {
		return d.SetIsolationLevel(ctx, conn, d.isolationLevel)
	}
	return nil
}

func (*Dialect) GetIsolationLevel(ctx context.Context, conn *database.Conn) (database.IsolationLevel, error) {
	var value int
	if err := conn.DB.QueryRowContext(ctx, "PRAGMA read_uncommitted").Scan(&value); err != nil {
		return database.IsolationNone, fmt.Errorf("failed to read isolation level: %w", err)
	}
	switch value {
	case 0:
		return database.IsolationSerializable, nil
	case 1:
		return database.IsolationReadUncommitted, nil
	default:
		return database.IsolationNone, fmt.Errorf("unknown read_uncommitted value: %d", value)
	}
}

func (d *Dialect) GetDefaultIsolationLevel(ctx context.Context, conn *database.Conn) (database.IsolationLevel, error) {
	return d.GetIsolationLevel(ctx, conn)
}

func (*Dialect) SetIsolationLevel(ctx context.Context, conn *database.Conn, level database.IsolationLevel) error {
	var value int
	switch database.IsolationLevel(strings.ToUpper(string(level))) {
	case database.IsolationSerializable:
		value = 0
	case database.IsolationReadUncommitted:
		value = 1
	default:
		return fmt.Errorf("invalid isolation level %q: valid levels are %q, %q",
			level, database.IsolationSerializable, database.IsolationReadUncommitted)
	}
	if _, err := conn.DB.ExecContext(ctx, "PRAGMA read_uncommitted = "+strconv.Itoa(value)); err != nil {
		return fmt.Errorf("failed to set isolation level %q: %w", level, err)
	}
	return nil
}

var (
	versionOnce sync.Once
	version     [3]int
)

func versionInfo() [3]int {
	versionOnce.Do(func() {
		conn, err := Open(context.Background(), connargs.MemoryTarget, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var s string
		if err := conn.DB.QueryRow("SELECT sqlite_version()").Scan(&s); err != nil {
			return
		}
		for i, part := range strings.SplitN(s, ".", 3) {
			version[i], _ = strconv.Atoi(part)
		}
	})
	return version
}

// txlockModes maps the pysqlite style isolation_level option to modernc's _txlock parameter.
var txlockModes = map[string]string{
	"DEFERRED":  "deferred",
	"IMMEDIATE": "immediate",
	"EXCLUSIVE": "exclusive",
}

// Open opens target with modernc.org/sqlite. Supported keywords are timeout (seconds, becomes a
// busy_timeout pragma) and isolation_level (BEGIN mode). The remaining pysqlite keywords have no
// database/sql counterpart and are accepted without effect.
func Open(ctx context.Context, target string, kw map[string]any) (*database.Conn, error) {
	params := url.Values{}
	for key, value := range kw {
		switch key {
		case "timeout":
			seconds, ok := value.(float64)
			if !ok {
				return nil, &database.TypeMismatchError{Key: key, Value: value, Want: "float64"}
			}
			params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", int64(seconds*1000)))
		case "isolation_level":
			level, _ := value.(string)
			if level == "" {
				continue
			}
			mode, ok := txlockModes[strings.ToUpper(level)]
			if !ok {
				return nil, fmt.Errorf("invalid isolation_level %q", level)
			}
			params.Set("_txlock", mode)
		case "detect_types", "check_same_thread", "cached_statements":
		default:
			return nil, fmt.Errorf("unexpected connect keyword %q", key)
		}
	}
	if err := registerFunctions(); err != nil {
		return nil, err
	}
	dsn := target
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + params.Encode()
	}
	db, err := sqldb.Open(ctx, DriverName, dsn)
	if err != nil {
		return nil, err
	}
	return &database.Conn{DB: db, Kind: database.KindSQLite}, nil
}

func connect(ctx context.Context, args database.ConnectArgs) (*database.Conn, error) {
	if len(args.Positional) != 1 {
		return nil, fmt.Errorf("sqlite: expected one connection target, got %d", len(args.Positional))
	}
	return Open(ctx, args.Positional[0], args.Keyword)
}
