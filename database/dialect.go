package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownDialect is returned by [Load] when no dialect is registered under the given name.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// Dialect adapts a SQLite-compatible driver to the host. Implementations are stateless; every
// method is safe to call concurrently.
type Dialect interface {
	// Name is the registry name, for example "sqlite.turso".
	Name() string
	// Driver is the driver component of the URL scheme, for example "turso".
	Driver() string

	// IsAsync reports whether the host should route calls through its asynchronous execution path.
	IsAsync() bool
	// SupportsStatementCache reports whether compiled statements may be cached by the host.
	SupportsStatementCache() bool

	// DBAPI returns the driver capability descriptor.
	DBAPI() *DBAPI

	// CreateConnectArgs translates a parsed URL into the arguments for [DBAPI.Connect].
	CreateConnectArgs(u *URL) (ConnectArgs, error)

	// OnConnect runs once on every new connection before the host uses it.
	OnConnect(ctx context.Context, conn *Conn) error

	// GetIsolationLevel returns the isolation level of the connection. An empty level means the
	// driver has no notion of isolation levels.
	GetIsolationLevel(ctx context.Context, conn *Conn) (IsolationLevel, error)
	// GetDefaultIsolationLevel returns the isolation level a fresh connection starts with.
	GetDefaultIsolationLevel(ctx context.Context, conn *Conn) (IsolationLevel, error)
	// SetIsolationLevel changes the isolation level of the connection.
	SetIsolationLevel(ctx context.Context, conn *Conn, level IsolationLevel) error
}

// IsolationLevel is a transaction isolation level name as the host spells it.
type IsolationLevel string

const (
	IsolationNone            IsolationLevel = ""
	IsolationSerializable    IsolationLevel = "SERIALIZABLE"
	IsolationReadUncommitted IsolationLevel = "READ UNCOMMITTED"
)

// DBAPI describes the driver module a dialect drives. The host probes these fields instead of
// inspecting the driver package itself.
type DBAPI struct {
	// Paramstyle is the bind parameter style, "qmark" for SQLite drivers.
	Paramstyle string
	// SQLiteVersionInfo is the (major, minor, patch) SQLite version the driver claims.
	SQLiteVersionInfo [3]int
	// IsError reports whether err originates from the driver.
	IsError func(err error) bool
	// Connect is the driver entry point. It receives the arguments built by
	// [Dialect.CreateConnectArgs].
	Connect func(ctx context.Context, args ConnectArgs) (*Conn, error)
}

// SQLiteVersion formats SQLiteVersionInfo as "major.minor.patch".
func (d *DBAPI) SQLiteVersion() string {
	v := d.SQLiteVersionInfo
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// ConnectArgs are the arguments a dialect hands to [DBAPI.Connect].
type ConnectArgs struct {
	Positional []string
	Keyword    map[string]any
}

// Target returns the first positional argument, or an empty string if there is none.
func (a ConnectArgs) Target() string {
	if len(a.Positional) == 0 {
		return ""
	}
	return a.Positional[0]
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Dialect)
)

// Register makes a dialect available under name. It panics if name is already registered or
// factory is nil.
func Register(name string, factory func() Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("database: Register dialect factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("database: Register called twice for dialect " + name)
	}
	registry[name] = factory
}

// Load returns a new instance of the dialect registered under name.
func Load(name string) (Dialect, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownDialect)
	}
	return factory(), nil
}

// Dialects returns a sorted list of the registered dialect names.
func Dialects() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
