package utils

import (
	"os"
	"strings"
)

// EnvOrDefault returns the env value or the fallback default.
func EnvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
