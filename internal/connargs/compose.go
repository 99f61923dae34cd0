package connargs

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/pressly/sqlturso/database"
)

// MemoryTarget is the connection target of a private in-memory database.
const MemoryTarget = ":memory:"

// EncodeQuery encodes query as a form-urlencoded string with keys in sorted order.
func EncodeQuery(query map[string]any) string {
	values := make(url.Values, len(query))
	for k, v := range query {
		values.Set(k, fmt.Sprint(v))
	}
	// Encode sorts by key, which keeps targets reproducible.
	return values.Encode()
}

// BuildTarget composes the connection target for u.
//
// Without a host the target is the database path, with "?query" appended when query is not
// empty. With a host it is an http or https URI carrying the credentials, port, database path and
// query of u.
func BuildTarget(u *database.URL, query map[string]any, secure bool) string {
	q := EncodeQuery(query)
	if u.Host == "" {
		target := u.Database
		if target == "" {
			target = MemoryTarget
		}
		if q != "" {
			return target + "?" + q
		}
		return target
	}
	scheme := "http"
	if secure {
		scheme = "https"
	}
	host := u.Host
	if u.Port != 0 {
		host += ":" + strconv.Itoa(u.Port)
	}
	target := &url.URL{
		Scheme:   scheme,
		Host:     host,
		RawQuery: q,
	}
	if u.Database != "" {
		target.Path = "/" + u.Database
	}
	switch {
	case u.Username != "" && u.Password != "":
		target.User = url.UserPassword(u.Username, u.Password)
	case u.Username != "":
		target.User = url.User(u.Username)
	}
	return target.String()
}
