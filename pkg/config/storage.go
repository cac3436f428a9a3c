package config

import (
	"fmt"
	"strings"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// StorageConfig selects the item store backend.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"oneof=postgres memory"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	if c.Driver == "" {
		c.Driver = StorageDriverPostgres
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid storage config: %w", err)
	}
	return nil
}
