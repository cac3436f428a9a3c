package config

import (
	"fmt"
	"strings"
	"time"
)

// ShutdownConfig bounds how long in-flight item requests may drain after SIGINT or SIGTERM.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	fmt.Fprintf(&b, "  drain timeout: %s\n", c.Timeout)
	return b.String()
}

// Validate requires a positive shutdown.timeout.
func (c *ShutdownConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("shutdown.timeout must be positive, got %s: %w", c.Timeout, err)
	}
	return nil
}
