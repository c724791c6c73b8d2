package secure

import (
	"strings"
	"time"

	"github.com/kbukum/securekit/auth/jwt"
	"github.com/kbukum/securekit/auth/password"
	"github.com/kbukum/securekit/encryption"
	apperrors "github.com/kbukum/securekit/errors"
	"github.com/kbukum/securekit/validation"
)

// Config is the resolved configuration of a Context.
//
// Environment mapping (see package config): JWT_SECRET -> jwt.secret,
// ENCRYPTION_KEY -> encryption.key, DATABASE_URL -> database.url.
type Config struct {
	JWT        jwt.Config       `yaml:"jwt" mapstructure:"jwt"`
	Encryption EncryptionConfig `yaml:"encryption" mapstructure:"encryption"`
	Database   DatabaseConfig   `yaml:"database" mapstructure:"database"`
	Password   password.Config  `yaml:"password" mapstructure:"password"`
}

// EncryptionConfig holds the symmetric key. An empty key makes New
// generate a process-local one.
type EncryptionConfig struct {
	// Key is 32 raw characters or the standard base64 of 32 bytes.
	Key string `yaml:"key" mapstructure:"key"`
}

// DatabaseConfig holds the database locator. The Context never connects;
// it only carries the value for callers.
type DatabaseConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// ApplyDefaults fills in zero-value tunables. Secrets are left alone.
func (c *Config) ApplyDefaults() {
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks the configuration without generating anything.
// Empty secrets are valid; a missing database URL is not.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return apperrors.MissingConfig("database.url")
	}
	if c.Encryption.Key != "" {
		if _, err := encryption.ParseKey(c.Encryption.Key); err != nil {
			return err
		}
	}
	return c.validateTunables()
}

func (c *Config) validateTunables() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Password.Validate(); err != nil {
		return err
	}
	if appErr := validation.New().
		OneOf("jwt.method", string(c.JWT.Method), []string{string(jwt.HS256), string(jwt.HS384), string(jwt.HS512)}).
		Required("jwt.issuer", c.JWT.Issuer).
		MinDuration("jwt.access_token_ttl", c.JWT.AccessTokenTTL, time.Second).
		MinDuration("jwt.refresh_token_ttl", c.JWT.RefreshTokenTTL, time.Second).
		Validate(); appErr != nil {
		return appErr
	}
	return nil
}
