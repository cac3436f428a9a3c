package config

import (
	"fmt"
	"strings"
)

// LogConfig sets the slog level. Empty means info.
type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

func (c *LogConfig) String() string {
	level := c.Level
	if level == "" {
		level = "info (default)"
	}
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	fmt.Fprintf(&b, "  level: %s\n", level)
	return b.String()
}

// Validate accepts an empty level or one of debug, info, warn and error.
func (c *LogConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error: %w", c.Level, err)
	}
	return nil
}
