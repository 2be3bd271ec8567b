package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookupEnv returns the trimmed value of key and whether it is non-blank.
func lookupEnv(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

// parsedEnvOrDefault parses key with parse, falling back to defaultValue when
// the variable is blank or parse rejects it.
func parsedEnvOrDefault[T any](key string, defaultValue T, parse func(string) (T, bool)) T {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	if val, ok := parse(raw); ok {
		return val
	}
	return defaultValue
}

func envOrDefault(key, defaultValue string) string {
	if raw, ok := lookupEnv(key); ok {
		return raw
	}
	return defaultValue
}

// durationEnvOrDefault accepts Go duration syntax; non-positive values fall back.
func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (time.Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

// intEnvOrDefault accepts positive integers only.
func intEnvOrDefault(key string, defaultValue int) int {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off":
			return false, true
		default:
			return false, false
		}
	})
}

// listEnvOrDefault splits a comma separated value, dropping blank entries.
func listEnvOrDefault(key string, defaultValue []string) []string {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) ([]string, bool) {
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, len(out) > 0
	})
}
