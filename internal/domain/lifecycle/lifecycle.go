// Package lifecycle holds timeouts used by start and stop hooks.
package lifecycle

import "time"

const (
	// DefaultTimeout bounds graceful shutdown of servers and clients.
	DefaultTimeout = 10 * time.Second

	// LoadTimeout bounds the initial parallel load of all repositories.
	LoadTimeout = 30 * time.Second
)
