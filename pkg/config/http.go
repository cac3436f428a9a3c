package config

import (
	"fmt"
	"strings"
	"time"
)

type HTTPConfig struct {
	Port           int `koanf:"port" validate:"min=1,max=65535"`
	MaxHeaderBytes int `koanf:"maxHeaderBytes" validate:"gte=0"`
	Timeout        struct {
		Read       time.Duration `koanf:"read" validate:"gt=0"`
		Write      time.Duration `koanf:"write" validate:"gt=0"`
		Idle       time.Duration `koanf:"idle" validate:"gt=0"`
		ReadHeader time.Duration `koanf:"readHeader" validate:"gt=0"`
	} `koanf:"timeout"`
}

// String returns a string representation of the HTTP server configuration.
func (c *HTTPConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Server ---\n")
	b.WriteString(fmt.Sprintf("  port: %d\n", c.Port))
	b.WriteString(fmt.Sprintf("  maxHeaderBytes: %d\n", c.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  timeout.read: %v\n", c.Timeout.Read))
	b.WriteString(fmt.Sprintf("  timeout.write: %v\n", c.Timeout.Write))
	b.WriteString(fmt.Sprintf("  timeout.idle: %v\n", c.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  timeout.readHeader: %v\n", c.Timeout.ReadHeader))
	return b.String()
}

func (c *HTTPConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid HTTP server config: %w", err)
	}
	return nil
}
