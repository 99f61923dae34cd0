package database

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// URL is a parsed connection URL of the form
//
//	backend[+driver]://[user[:password]@]host[:port]/database[?key=value&...]
//
// Local databases leave the host empty: "sqlite+turso:///relative.db" or
// "sqlite+turso:////abs/path.db".
type URL struct {
	Backend  string
	Driver   string
	Username string
	Password string
	Host     string
	Port     int
	Database string
	// Query holds the connection options. Values parsed from a URL string are strings; callers
	// building a URL by hand may use bool, int or float64 values as well.
	Query map[string]any
}

// ParseURL parses raw into a [URL]. Percent-encoded userinfo is decoded. When a query key is
// repeated, the first value wins.
func ParseURL(raw string) (*URL, error) {
	if raw == "" {
		return nil, errors.New("empty connection url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection url: %w", err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("connection url %q has no scheme", redact(raw))
	}
	if u.Opaque != "" {
		return nil, fmt.Errorf("connection url %q must start with %s://", redact(raw), u.Scheme)
	}
	backend, driver, _ := strings.Cut(u.Scheme, "+")
	if backend == "" {
		return nil, fmt.Errorf("connection url %q has no backend", redact(raw))
	}
	out := &URL{
		Backend: backend,
		Driver:  driver,
		Host:    u.Hostname(),
		// Exactly one slash separates the authority from the database, any further slash belongs
		// to an absolute path.
		Database: strings.TrimPrefix(u.Path, "/"),
		Query:    make(map[string]any),
	}
	if u.User != nil {
		out.Username = u.User.Username()
		out.Password, _ = u.User.Password()
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", p, err)
		}
		out.Port = port
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection url query: %w", err)
	}
	for key, vv := range values {
		if len(vv) > 0 {
			out.Query[key] = vv[0]
		}
	}
	return out, nil
}

// DialectName is the registry name the URL resolves to: "backend.driver", or just "backend"
// when the URL names no driver.
func (u *URL) DialectName() string {
	if u.Driver == "" {
		return u.Backend
	}
	return u.Backend + "." + u.Driver
}

// String renders the URL, including the password.
func (u *URL) String() string {
	return u.render(false)
}

// Redacted renders the URL with the password replaced by "***".
func (u *URL) Redacted() string {
	return u.render(true)
}

func (u *URL) render(redacted bool) string {
	scheme := u.Backend
	if u.Driver != "" {
		scheme += "+" + u.Driver
	}
	out := &url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   "/" + u.Database,
	}
	if u.Port != 0 {
		out.Host += ":" + strconv.Itoa(u.Port)
	}
	if u.Username != "" {
		switch {
		case u.Password != "" && redacted:
			out.User = url.UserPassword(u.Username, "xxxxx")
		case u.Password != "":
			out.User = url.UserPassword(u.Username, u.Password)
		default:
			out.User = url.User(u.Username)
		}
	}
	if len(u.Query) > 0 {
		values := make(url.Values, len(u.Query))
		for k, v := range u.Query {
			values.Set(k, fmt.Sprint(v))
		}
		out.RawQuery = values.Encode()
	}
	s := out.String()
	if redacted {
		s = strings.Replace(s, ":xxxxx@", ":***@", 1)
	}
	// url.URL collapses an empty authority; keep the "scheme:///" form for local databases.
	if u.Host == "" && !strings.HasPrefix(s, scheme+"://") {
		s = scheme + "://" + strings.TrimPrefix(s, scheme+":")
	}
	return s
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
