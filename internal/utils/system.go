package utils

import (
	"os"
	"os/user"
)

// GetHostname returns the system hostname, falling back to the current
// username and finally to "unknown".
func GetHostname() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}
