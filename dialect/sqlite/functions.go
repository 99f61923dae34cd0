package sqlite

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"sync"

	"modernc.org/sqlite"
)

var (
	registerOnce sync.Once
	registerErr  error

	patterns sync.Map // string -> *regexp.Regexp
)

// registerFunctions installs the SQL functions the host expects from a SQLite connection.
// modernc.org/sqlite keeps them in a process wide table and applies them to connections opened
// afterwards, so this runs once and before the first connection.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction("regexp", 2, regexpFunc)
		if registerErr != nil {
			registerErr = fmt.Errorf("failed to register regexp function: %w", registerErr)
		}
	})
	return registerErr
}

// regexpFunc implements "value REGEXP pattern", which SQLite calls as regexp(pattern, value).
func regexpFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	pattern, ok := text(args[0])
	if !ok {
		return nil, nil
	}
	value, ok := text(args[1])
	if !ok {
		return nil, nil
	}
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	if re.MatchString(value) {
		return int64(1), nil
	}
	return int64(0), nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

func text(v driver.Value) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}
