package config

import (
	"fmt"
	"strings"
)

// PProfConfig controls the side listener serving net/http/pprof, kept apart from the item API port.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr" validate:"required_if=Enabled true"`
}

func (c *PProfConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- PProf ---\n")
	if !c.Enabled {
		b.WriteString("  disabled\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  listen: %s\n", c.Addr)
	return b.String()
}

// Validate requires pprof.addr once the listener is enabled.
func (c *PProfConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("pprof.addr is required when pprof.enabled is true: %w", err)
	}
	return nil
}
