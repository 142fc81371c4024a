package config

import (
	"fmt"
	"strings"
)

// AuthConfig holds the shared secret expected in the Authorization header.
type AuthConfig struct {
	Token string `koanf:"token"`
}

// String returns a string representation of the auth configuration with the token masked.
func (c *AuthConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Auth ---\n")
	b.WriteString(fmt.Sprintf("  token: %s\n", maskSecret(c.Token)))
	return b.String()
}

func (c *AuthConfig) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("auth token is not configured")
	}
	return nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<not configured>"
	}
	return "****"
}
