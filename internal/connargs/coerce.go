package connargs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pressly/sqlturso/database"
)

// Type is the Go type a connection option is converted to.
type Type int

const (
	Bool Type = iota + 1
	Int
	Float
	String
)

func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float64"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Option is a connection option understood by the local driver layer.
type Option struct {
	Key  string
	Type Type
}

// DriverOptions are the options consumed by the driver rather than sent to a remote endpoint.
var DriverOptions = []Option{
	{"uri", Bool},
	{"timeout", Float},
	{"isolation_level", String},
	{"detect_types", Int},
	{"check_same_thread", Bool},
	{"cached_statements", Int},
	// Selects https over http for remote targets.
	{"secure", Bool},
}

// CoerceInto converts opts[key] to typ and stores the result in dest. A missing key leaves dest
// untouched.
func CoerceInto(opts map[string]any, key string, typ Type, dest map[string]any) error {
	v, ok := opts[key]
	if !ok {
		return nil
	}
	out, err := Coerce(key, v, typ)
	if err != nil {
		return err
	}
	dest[key] = out
	return nil
}

// Coerce converts v to typ. Failures are reported as [*database.TypeMismatchError].
func Coerce(key string, v any, typ Type) (any, error) {
	mismatch := func(err error) error {
		return &database.TypeMismatchError{Key: key, Value: v, Want: typ.String(), Err: err}
	}
	switch typ {
	case Bool:
		b, err := toBool(v)
		if err != nil {
			return nil, mismatch(err)
		}
		return b, nil
	case Int:
		n, err := toInt(v)
		if err != nil {
			return nil, mismatch(err)
		}
		return n, nil
	case Float:
		f, err := toFloat(v)
		if err != nil {
			return nil, mismatch(err)
		}
		return f, nil
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	default:
		return nil, mismatch(fmt.Errorf("unsupported type %d", typ))
	}
}

func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "on", "y", "t", "1":
			return true, nil
		case "false", "no", "off", "n", "f", "0":
			return false, nil
		}
		return false, fmt.Errorf("string %q is not a boolean", t)
	}
	return false, fmt.Errorf("unsupported value")
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(t))
	}
	return 0, fmt.Errorf("unsupported value")
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	return 0, fmt.Errorf("unsupported value")
}
