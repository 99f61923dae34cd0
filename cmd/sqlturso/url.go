package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/mfridman/interpolate"
	"github.com/pressly/sqlturso/database"
	"github.com/pressly/sqlturso/internal/cfg"
)

// firstNonEmpty returns the first non-empty string from the provided values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// urlsFromArgs returns the URLs given on the command line, falling back to SQLTURSO_URL.
func urlsFromArgs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if raw := firstNonEmpty(cfg.SQLTURSOURL); raw != "" {
		return []string{raw}, nil
	}
	return nil, errors.New("missing connection url: pass it as an argument or set SQLTURSO_URL")
}

type envWrapper struct{}

var _ interpolate.Env = (*envWrapper)(nil)

func (e *envWrapper) Get(name string) (string, bool) {
	return os.LookupEnv(name)
}

// resolveURL expands ${VAR} references in raw and the extra options, and merges the options into
// the query of the URL.
func resolveURL(raw string, options map[string]string) (*database.URL, error) {
	expanded, err := interpolate.Interpolate(&envWrapper{}, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables in url: %w", err)
	}
	u, err := database.ParseURL(expanded)
	if err != nil {
		return nil, err
	}
	for key, value := range options {
		v, err := interpolate.Interpolate(&envWrapper{}, value)
		if err != nil {
			return nil, fmt.Errorf("failed to expand environment variables in option %q: %w", key, err)
		}
		u.Query[key] = v
	}
	return u, nil
}

// redactTarget masks the password of a URI connection target. Paths are returned unchanged.
func redactTarget(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.User == nil {
		return target
	}
	if _, ok := u.User.Password(); !ok {
		return target
	}
	return strings.Replace(u.Redacted(), ":xxxxx@", ":***@", 1)
}
