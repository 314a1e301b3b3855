package instance

import (
	"os"

	"github.com/angelmondragon/freshcart/pkg/env"
)

// GetID returns the process instance identifier used in startup logs.
// DYNO wins over the host name; "local" is the last resort.
func GetID() string {
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
