package env

import (
	"os"
	"strings"
)

// Get reads a variable outside the envconfig tree, such as RATEWISE_LOG_FORMAT which the
// logger needs before config is loaded. Unset or blank values yield fallback.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
