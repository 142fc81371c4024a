package config

import (
	"fmt"
	"strings"
)

// OpsConfig configures the listener for health, metrics and pprof endpoints.
type OpsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// String returns a string representation of the ops configuration.
func (c *OpsConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Ops ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  address: %s\n", c.Addr))
	return b.String()
}

func (c *OpsConfig) Validate() error {
	if c.Enabled && c.Addr == "" {
		return fmt.Errorf("ops server is enabled but address is not configured")
	}
	return nil
}
