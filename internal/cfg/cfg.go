package cfg

import (
	"os"
	"strings"
)

var (
	SQLTURSOURL     = ""
	SQLTURSOVERBOSE = "false"
	SQLTURSOENVFILE = DefaultEnvFile
	// https://no-color.org/
	SQLTURSONOCOLOR = "false"
)

var (
	DefaultEnvFile = ".env"
)

// Load reads the config values from environment. Call it after the -env file, if any, has been
// loaded so that values from the file are visible.
func Load() {
	SQLTURSOURL = envOr("SQLTURSO_URL", SQLTURSOURL)
	SQLTURSOVERBOSE = envOr("SQLTURSO_VERBOSE", SQLTURSOVERBOSE)
	SQLTURSOENVFILE = envOr("SQLTURSO_ENV_FILE", SQLTURSOENVFILE)
	// https://no-color.org/
	SQLTURSONOCOLOR = envOr("NO_COLOR", SQLTURSONOCOLOR)
}

// An EnvVar is an environment variable Name=Value.
type EnvVar struct {
	Name  string
	Value string
}

func List() []EnvVar {
	return []EnvVar{
		{Name: "SQLTURSO_URL", Value: SQLTURSOURL},
		{Name: "SQLTURSO_VERBOSE", Value: SQLTURSOVERBOSE},
		{Name: "SQLTURSO_ENV_FILE", Value: SQLTURSOENVFILE},
		{Name: "NO_COLOR", Value: SQLTURSONOCOLOR},
	}
}

// SplitKeyValuesIntoMap parses "k1=v1,k2=v2" into a map. Pairs without "=" are skipped.
func SplitKeyValuesIntoMap(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// envOr returns os.Getenv(key) if set, or else default.
func envOr(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		val = def
	}
	return val
}
