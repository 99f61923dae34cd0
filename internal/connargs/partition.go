// Package connargs translates a parsed connection URL into the single connection target a
// turso client accepts.
package connargs

import (
	"fmt"
	"path/filepath"

	"github.com/pressly/sqlturso/database"
)

// Partition is the result of splitting the options of a URL between the local driver layer and
// the remote query string.
type Partition struct {
	// Target is the connection target handed to the driver.
	Target string
	// Local holds the coerced driver options. "secure" has already been consumed when the URL
	// addresses a URI target.
	Local map[string]any
	// Query holds the options forwarded as the remote query string. Nil for plain path targets.
	Query map[string]any
	// Secure reports whether an https scheme was requested.
	Secure bool
}

// Split coerces the driver options of u and resolves the connection target.
func Split(u *database.URL) (*Partition, error) {
	p := &Partition{
		Local: make(map[string]any),
	}
	for _, opt := range DriverOptions {
		if err := CoerceInto(u.Query, opt.Key, opt.Type, p.Local); err != nil {
			return nil, err
		}
	}
	if u.Host != "" {
		// A network endpoint can only be addressed with a URI.
		p.Local["uri"] = true
	}
	if isURI, _ := p.Local["uri"].(bool); isURI {
		p.Query = make(map[string]any, len(u.Query))
		for k, v := range u.Query {
			p.Query[k] = v
		}
		for _, opt := range DriverOptions {
			delete(p.Query, opt.Key)
		}
		p.Secure, _ = p.Local["secure"].(bool)
		delete(p.Local, "secure")
		p.Target = BuildTarget(u, p.Query, p.Secure)
		return p, nil
	}
	p.Target = u.Database
	if p.Target == "" {
		p.Target = MemoryTarget
	}
	if p.Target != MemoryTarget {
		abs, err := filepath.Abs(p.Target)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path %q: %w", p.Target, err)
		}
		p.Target = abs
	}
	return p, nil
}

// unsupportedKeywords are the driver options the turso connect entry point rejects; it takes the
// connection target and nothing else.
var unsupportedKeywords = []string{
	"check_same_thread",
	"uri",
	"timeout",
	"isolation_level",
	"detect_types",
	"cached_statements",
	"secure",
}

// Build returns the connect arguments for u: exactly one positional argument, the connection
// target, and no keyword arguments.
func Build(u *database.URL) (database.ConnectArgs, error) {
	p, err := Split(u)
	if err != nil {
		return database.ConnectArgs{}, err
	}
	kw := make(map[string]any, len(p.Local))
	for k, v := range p.Local {
		kw[k] = v
	}
	for _, k := range unsupportedKeywords {
		delete(kw, k)
	}
	return database.ConnectArgs{
		Positional: []string{p.Target},
		Keyword:    kw,
	}, nil
}
