package sqlturso

import (
	"context"
	"errors"

	"github.com/pressly/sqlturso/database"
)

// Connector opens a connection from the connect arguments a dialect produced. It replaces the
// dialect's own driver entry point, for example to hand out connections from another pool.
type Connector func(ctx context.Context, args database.ConnectArgs) (*database.Conn, error)

// OpenOption is used to configure [Open].
type OpenOption interface {
	apply(*config) error
}

type configFunc func(*config) error

func (f configFunc) apply(c *config) error { return f(c) }

type config struct {
	logger    Logger
	verbose   bool
	connector Connector
}

// WithLogger sets the logger used by [Open]. Defaults to the logger set with [SetLogger].
func WithLogger(l Logger) OpenOption {
	return configFunc(func(c *config) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = l
		return nil
	})
}

// WithVerbose logs the dialect and the redacted connection target of every connection.
func WithVerbose(b bool) OpenOption {
	return configFunc(func(c *config) error {
		c.verbose = b
		return nil
	})
}

// WithConnector replaces the driver entry point of the dialect.
func WithConnector(fn Connector) OpenOption {
	return configFunc(func(c *config) error {
		if fn == nil {
			return errors.New("connector must not be nil")
		}
		c.connector = fn
		return nil
	})
}
