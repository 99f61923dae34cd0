// Package database defines the dialect plugin interface a host uses to drive a SQLite-compatible
// driver: a parsed connection [URL], the [Dialect] interface, the [DBAPI] capability descriptor
// and a global dialect registry.
//
// A host resolves a dialect by name with [Load], asks it for [ConnectArgs], calls
// [DBAPI.Connect] with the single connection target, and finally runs the dialect's post-connect
// hook. Dialects register themselves with [Register], typically from an init function:
//
//	func init() {
//		database.Register("sqlite.turso", func() database.Dialect { return turso.New(turso.Sync) })
//	}
package database
