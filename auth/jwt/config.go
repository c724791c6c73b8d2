package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/securekit/version"
)

// SigningMethod defines supported JWT signing algorithms.
// Only the HMAC family is supported: the signing secret is symmetric.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

const (
	// DefaultIssuer is the fixed "iss" claim of every token.
	DefaultIssuer = "harmonic-iot-protocol"

	// ProtocolVersion is carried in access tokens as harmonic_protocol_version.
	ProtocolVersion = version.TokenProtocol

	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Config configures the JWT token service.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string `mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `mapstructure:"method"`

	// Issuer is the "iss" claim (default: DefaultIssuer).
	Issuer string `mapstructure:"issuer"`

	// AccessTokenTTL is the default lifetime of access tokens (default: 15m).
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`

	// RefreshTokenTTL is the lifetime of refresh tokens (default: 7d).
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.Issuer == "" {
		c.Issuer = DefaultIssuer
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = DefaultRefreshTokenTTL
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("jwt: secret is required for HMAC signing methods")
	}
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return errors.New("jwt: unsupported signing method: " + string(c.Method))
	}
	if c.AccessTokenTTL < time.Second {
		return fmt.Errorf("jwt: access_token_ttl must be at least 1s (got: %s)", c.AccessTokenTTL)
	}
	if c.RefreshTokenTTL < time.Second {
		return fmt.Errorf("jwt: refresh_token_ttl must be at least 1s (got: %s)", c.RefreshTokenTTL)
	}
	return nil
}

// Describe returns a one-liner for startup summaries.
// Example: "JWT(HS256) access=15m0s refresh=168h0m0s"
func (c *Config) Describe() string {
	return fmt.Sprintf("JWT(%s) access=%s refresh=%s", c.Method, c.AccessTokenTTL, c.RefreshTokenTTL)
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

// key returns the HMAC key used for signing and verification.
func (c *Config) key() []byte {
	return []byte(c.Secret)
}
