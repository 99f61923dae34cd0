package database

import "database/sql"

// ConnKind tags a [Conn] with the driver that created it.
type ConnKind int

const (
	// KindSQLite is a connection opened by the generic SQLite driver.
	KindSQLite ConnKind = iota
	// KindTurso is a connection opened by the turso client.
	KindTurso
)

func (k ConnKind) String() string {
	switch k {
	case KindSQLite:
		return "sqlite"
	case KindTurso:
		return "turso"
	default:
		return "unknown"
	}
}

// Conn is a live database handle together with the kind of driver behind it.
type Conn struct {
	DB   *sql.DB
	Kind ConnKind
}

// Close closes the underlying database handle. It is safe to call on a Conn without one.
func (c *Conn) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
