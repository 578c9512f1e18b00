// Package env reads configuration from an environment captured as a map, so callers never
// depend on the process environment directly.
package env

import (
	"strings"
)

// ParseEnvs converts `KEY=value` pairs, as returned by os.Environ, into a map. Pairs without `=`
// are skipped, a later pair wins over an earlier one.
func ParseEnvs(envs []string) map[string]string {
	parsed := make(map[string]string, len(envs))

	for _, env := range envs {
		if key, value, ok := strings.Cut(env, "="); ok && key != "" {
			parsed[key] = value
		}
	}

	return parsed
}

// Lookup returns the trimmed value of key. A variable set to blanks counts as unset.
func Lookup(env map[string]string, key string) (string, bool) {
	if key == "" {
		return "", false
	}

	val := strings.TrimSpace(env[key])

	return val, val != ""
}

// GetString returns the value of key or fallback when it is unset.
func GetString(env map[string]string, key, fallback string) string {
	if val, ok := Lookup(env, key); ok {
		return val
	}

	return fallback
}
