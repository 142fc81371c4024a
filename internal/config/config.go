// Package config defines the configuration of the product API.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/productapi/internal/platform/config"
	"github.com/abgdnv/productapi/internal/platform/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// ServiceName prefixes environment variables, e.g. PRODUCT_AUTH_TOKEN.
const ServiceName = "product"

type Config struct {
	HTTPServer config.HTTPConfig      `koanf:"server"`
	Log        config.LogConfig       `koanf:"log"`
	Auth       config.AuthConfig      `koanf:"auth"`
	Ops        config.OpsConfig       `koanf:"ops"`
	Shutdown   config.ShutdownConfig  `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig `koanf:"telemetry"`
	Catalog    CatalogConfig          `koanf:"catalog"`
}

// CatalogConfig controls the initial content of the in-memory catalog.
type CatalogConfig struct {
	Seed bool `koanf:"seed"`
}

// Defaults returns the values used when neither a file nor the environment sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":                        3000,
		"server.maxheaderbytes":              1 << 20,
		"server.maxbodybytes":                1 << 20,
		"server.timeout.read":                "10s",
		"server.timeout.write":               "10s",
		"server.timeout.idle":                "60s",
		"server.timeout.readheader":          "5s",
		"log.level":                          "info",
		"auth.token":                         "secrettoken",
		"ops.enabled":                        false,
		"ops.addr":                           ":6060",
		"shutdown.timeout":                   "15s",
		"telemetry.traces.enabled":           false,
		"telemetry.traces.otlphttp.endpoint": "localhost:4318",
		"telemetry.traces.otlphttp.insecure": true,
		"telemetry.traces.otlphttp.timeout":  "5s",
		"catalog.seed":                       true,
	}
}

// Load reads the configuration from defaults, config.yaml, .env and the environment.
func Load() (*Config, error) {
	return configloader.Load[*Config](ServiceName, Defaults())
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.Auth.String())
	b.WriteString(c.Ops.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  seed: %t\n", c.Catalog.Seed))
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Ops.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	return nil
}
