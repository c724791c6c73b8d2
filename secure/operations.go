package secure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/securekit/auth/authctx"
	"github.com/kbukum/securekit/auth/jwt"
	apperrors "github.com/kbukum/securekit/errors"
	"github.com/kbukum/securekit/logger"
	"github.com/kbukum/securekit/observability"
	"github.com/kbukum/securekit/random"
)

// Operation names used for spans, metrics, and logs.
const (
	OpHashPassword       = "hash_password"
	OpVerifyPassword     = "verify_password"
	OpEncrypt            = "encrypt"
	OpDecrypt            = "decrypt"
	OpIssueAccessToken   = "issue_access_token"
	OpIssueRefreshToken  = "issue_refresh_token"
	OpVerifyToken        = "verify_token"
	OpVerifyRefreshToken = "verify_refresh_token"
	OpRandomString       = "random_string"
)

// observe runs fn as a traced, measured operation. Failures are logged at
// debug level with their error code; inputs are never logged.
func (c *Context) observe(ctx context.Context, name string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, op := observability.StartOperation(ctx, c.metrics, name, attrs...)
	err := fn(ctx)
	op.End(ctx, err)
	if err != nil {
		c.log.WithContext(ctx).Debug("operation failed", logger.ErrorFields(name, err))
	}
	return err
}

// HashPassword hashes password with a fresh 16-byte salt.
func (c *Context) HashPassword(password string) (string, error) {
	return c.HashPasswordContext(context.Background(), password)
}

// HashPasswordContext is HashPassword bounded by the concurrency limiter.
// It returns ctx.Err() if ctx ends while waiting for a slot.
func (c *Context) HashPasswordContext(ctx context.Context, password string) (string, error) {
	var stored string
	err := c.observe(ctx, OpHashPassword, func(ctx context.Context) error {
		var err error
		stored, err = c.limiter.Hash(ctx, password)
		return err
	})
	return stored, err
}

// HashPasswordWithSalt hashes password with the given salt. The result is
// deterministic for a given password and salt.
func (c *Context) HashPasswordWithSalt(password string, salt []byte) (string, error) {
	return c.HashPasswordWithSaltContext(context.Background(), password, salt)
}

// HashPasswordWithSaltContext is HashPasswordWithSalt bounded by the
// concurrency limiter.
func (c *Context) HashPasswordWithSaltContext(ctx context.Context, password string, salt []byte) (string, error) {
	var stored string
	err := c.observe(ctx, OpHashPassword, func(ctx context.Context) error {
		var err error
		stored, err = c.limiter.HashWithSalt(ctx, password, salt)
		return err
	})
	return stored, err
}

// VerifyPassword reports whether password matches stored. It fails closed.
func (c *Context) VerifyPassword(password, stored string) bool {
	ok, err := c.VerifyPasswordContext(context.Background(), password, stored)
	return err == nil && ok
}

// VerifyPasswordContext is VerifyPassword bounded by the concurrency
// limiter. A non-nil error means the check did not run.
func (c *Context) VerifyPasswordContext(ctx context.Context, password, stored string) (bool, error) {
	var ok bool
	err := c.observe(ctx, OpVerifyPassword, func(ctx context.Context) error {
		var err error
		ok, err = c.limiter.Verify(ctx, password, stored)
		return err
	})
	return ok, err
}

// Encrypt seals plaintext into a base64 envelope. "" encrypts to "".
func (c *Context) Encrypt(plaintext string) (string, error) {
	var envelope string
	err := c.observe(context.Background(), OpEncrypt, func(context.Context) error {
		var err error
		envelope, err = c.cipher.Encrypt(plaintext)
		return err
	})
	return envelope, err
}

// Decrypt opens an envelope produced by Encrypt. "" decrypts to "".
func (c *Context) Decrypt(envelope string) (string, error) {
	var plaintext string
	err := c.observe(context.Background(), OpDecrypt, func(context.Context) error {
		var err error
		plaintext, err = c.cipher.Decrypt(envelope)
		return err
	})
	return plaintext, err
}

// IssueAccessToken signs an access token for userID and role. A zero ttl
// uses the configured default (15 minutes unless overridden).
func (c *Context) IssueAccessToken(userID, role string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.cfg.JWT.AccessTokenTTL
	}
	var token string
	err := c.observe(context.Background(), OpIssueAccessToken, func(context.Context) error {
		var err error
		token, err = c.tokens.IssueAccessToken(userID, role, ttl)
		return err
	}, attribute.String(observability.AttrUserID, userID))
	return token, err
}

// IssueRefreshToken signs a refresh token for userID with the configured
// refresh lifetime.
func (c *Context) IssueRefreshToken(userID string) (string, error) {
	var token string
	err := c.observe(context.Background(), OpIssueRefreshToken, func(context.Context) error {
		var err error
		token, err = c.tokens.IssueRefreshToken(userID)
		return err
	}, attribute.String(observability.AttrUserID, userID))
	return token, err
}

// VerifyToken verifies a token and returns its user ID and role.
func (c *Context) VerifyToken(token string) (userID, role string, err error) {
	err = c.observe(context.Background(), OpVerifyToken, func(context.Context) error {
		var err error
		userID, role, err = c.tokens.Verify(token)
		return err
	})
	return userID, role, err
}

// ParseToken verifies a token and returns its full claim set.
func (c *Context) ParseToken(token string) (*jwt.Claims, error) {
	var claims *jwt.Claims
	err := c.observe(context.Background(), OpVerifyToken, func(context.Context) error {
		var err error
		claims, err = c.tokens.Parse(token)
		return err
	})
	return claims, err
}

// Authenticate verifies an access token and returns a copy of ctx carrying
// its claims for authctx.
func (c *Context) Authenticate(ctx context.Context, token string) (context.Context, error) {
	var claims *jwt.Claims
	err := c.observe(ctx, OpVerifyToken, func(context.Context) error {
		var err error
		claims, err = c.tokens.Parse(token)
		return err
	})
	if err != nil {
		return ctx, err
	}
	return authctx.WithClaims(ctx, claims), nil
}

// VerifyRefreshToken verifies a refresh token and returns its user ID.
// Access tokens are rejected with INVALID_TOKEN.
func (c *Context) VerifyRefreshToken(token string) (string, error) {
	var userID string
	err := c.observe(context.Background(), OpVerifyRefreshToken, func(context.Context) error {
		var err error
		userID, err = c.tokens.VerifyRefreshToken(token)
		return err
	})
	return userID, err
}

// RandomString returns an n-character random secret.
func (c *Context) RandomString(n int) (string, error) {
	var s string
	err := c.observe(context.Background(), OpRandomString, func(context.Context) error {
		if n < 1 {
			return apperrors.InvalidInput("length", "length must be at least 1").WithDetail("length", n)
		}
		var err error
		s, err = random.String(c.rand, n)
		if err != nil {
			return apperrors.CryptoFailure("generate random string", err)
		}
		return nil
	})
	return s, err
}
