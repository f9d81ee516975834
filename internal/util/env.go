package util

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnv returns the ENV variable identified by key or defaultVal if unset.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

// GetEnvAsInt returns the ENV variable parsed as int or defaultVal if unset
// or unparsable.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsInt64 returns the ENV variable parsed as int64 or defaultVal if
// unset or unparsable.
func GetEnvAsInt64(key string, defaultVal int64) int64 {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseInt(strVal, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsBool returns the ENV variable parsed as bool or defaultVal if unset
// or unparsable.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsDuration returns the ENV variable parsed as time.Duration (e.g.
// "30s", "2m") or defaultVal if unset or unparsable.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	strVal := GetEnv(key, "")

	if val, err := time.ParseDuration(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsStringArr returns the ENV variable split by sep (default ",") or
// defaultVal if unset or empty. Empty entries are dropped.
func GetEnvAsStringArr(key string, defaultVal []string, sep ...string) []string {
	strVal := GetEnv(key, "")

	if strVal == "" {
		return defaultVal
	}

	separator := ","
	if len(sep) > 0 {
		separator = sep[0]
	}

	parts := strings.Split(strVal, separator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	if len(out) == 0 {
		return defaultVal
	}

	return out
}
