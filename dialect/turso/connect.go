package turso

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/pressly/sqlturso/database"
	"github.com/pressly/sqlturso/dialect/sqlite"
	"github.com/pressly/sqlturso/internal/sqldb"

	// Registers the "libsql" driver for remote targets.
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// libsqlDriverName is the database/sql driver registered by libsql-client-go.
const libsqlDriverName = "libsql"

var remoteSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"libsql": true,
	"ws":     true,
	"wss":    true,
}

// IsRemote reports whether target addresses a network endpoint rather than a local file.
func IsRemote(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return remoteSchemes[u.Scheme]
}

// Connect is the turso client entry point. It accepts the connection target and nothing else.
// Remote targets go through libsql-client-go; local files and ":memory:" are served by the
// embedded engine.
func Connect(ctx context.Context, target string) (*database.Conn, error) {
	if !IsRemote(target) {
		conn, err := sqlite.Open(ctx, target, nil)
		if err != nil {
			return nil, err
		}
		conn.Kind = database.KindTurso
		return conn, nil
	}
	db, err := sqldb.Open(ctx, libsqlDriverName, target)
	if err != nil {
		return nil, err
	}
	return &database.Conn{DB: db, Kind: database.KindTurso}, nil
}

func connect(ctx context.Context, args database.ConnectArgs) (*database.Conn, error) {
	if len(args.Positional) != 1 {
		return nil, fmt.Errorf("turso: connect takes exactly one connection target, got %d", len(args.Positional))
	}
	if len(args.Keyword) > 0 {
		keys := make([]string, 0, len(args.Keyword))
		for k := range args.Keyword {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("turso: connect takes no keyword arguments, got %v", keys)
	}
	return Connect(ctx, args.Positional[0])
}
