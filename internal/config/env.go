// Package config loads the blog client and development post store settings
// from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// envString returns the trimmed value of key, or "" when unset
func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// envInt parses key when set and accept returns true. Invalid values are
// logged and leave current untouched.
func envInt(key string, current int, accept func(int) bool) int {
	v := envString(key)
	if v == "" {
		return current
	}

	n, err := strconv.Atoi(v)
	if err == nil && accept(n) {
		return n
	}
	slog.Warn("[CONFIG] invalid "+key+" value, using default",
		"value", v,
		"default", current,
		"error", err,
	)
	return current
}

func envFloat(key string, current float64, accept func(float64) bool) float64 {
	v := envString(key)
	if v == "" {
		return current
	}

	f, err := strconv.ParseFloat(v, 64)
	if err == nil && accept(f) {
		return f
	}
	slog.Warn("[CONFIG] invalid "+key+" value, using default",
		"value", v,
		"default", current,
		"error", err,
	)
	return current
}

// splitList splits a comma separated list and drops empty entries
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func positive(n int) bool    { return n > 0 }
func nonNegative(n int) bool { return n >= 0 }
