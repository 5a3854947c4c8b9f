package config

import "fmt"

// JWTConfig holds the HS256 settings for bearer tokens on the cache invalidation endpoints.
// An empty Secret leaves those endpoints open.
type JWTConfig struct {
	Secret          string `mapstructure:"jwt_secret"`
	Issuer          string `mapstructure:"issuer"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// Enabled reports whether bearer tokens are required.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

func (c JWTConfig) validate() error {
	if c.ExpirationHours < 1 {
		return &ValidationError{
			Field:   "auth.expiration_hours",
			Message: fmt.Sprintf("must be at least 1 hour, got: %d", c.ExpirationHours),
		}
	}
	if c.Enabled() && len(c.Secret) < 16 {
		return &ValidationError{Field: "auth.jwt_secret", Message: "must be at least 16 characters"}
	}
	return nil
}
