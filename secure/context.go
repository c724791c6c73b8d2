package secure

import (
	"bytes"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kbukum/securekit/auth/jwt"
	"github.com/kbukum/securekit/auth/password"
	"github.com/kbukum/securekit/encryption"
	apperrors "github.com/kbukum/securekit/errors"
	"github.com/kbukum/securekit/logger"
	"github.com/kbukum/securekit/observability"
	"github.com/kbukum/securekit/random"
)

// GeneratedSecretLength is the length of a JWT secret generated when none
// is configured.
const GeneratedSecretLength = 64

// Names reported by GeneratedSecrets.
const (
	SecretJWT           = "jwt.secret"
	SecretEncryptionKey = "encryption.key"
)

// Context holds the process's secret material and the services built on
// it. It is immutable after New and safe for concurrent use.
type Context struct {
	cfg           Config
	jwtSecret     []byte
	encryptionKey []byte
	databaseURL   string
	generated     []string

	limiter *password.Limiter
	cipher  *encryption.Service
	tokens  *jwt.Service

	log     *logger.Logger
	metrics *observability.Metrics
	rand    io.Reader
	started atomic.Bool
}

type options struct {
	log     *logger.Logger
	metrics *observability.Metrics
	rand    io.Reader
	now     func() time.Time
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger (default: discard).
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records every operation on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithRandom replaces the CSPRNG used for generated secrets, salts, IVs,
// and token identifiers.
func WithRandom(r io.Reader) Option {
	return func(o *options) { o.rand = r }
}

// WithClock sets the time source for token issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds a Context from cfg. Initialization stops at the first failure:
//
//  1. the random source must produce output (ENTROPY_UNAVAILABLE);
//  2. database.url must be set (MISSING_CONFIG);
//  3. an empty jwt.secret is replaced by a generated 64-character secret;
//  4. an empty encryption.key is replaced by 32 generated bytes, while a
//     non-empty key must parse to 32 bytes (INVALID_KEY);
//  5. the remaining tunables must validate (INVALID_INPUT).
//
// Generated secrets live only as long as the process: tokens and envelopes
// made with them cannot be verified or opened after a restart.
func New(cfg Config, opts ...Option) (*Context, error) {
	o := options{log: logger.Nop(), rand: random.Reader, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.WithComponent("secure")
	cfg.ApplyDefaults()

	if err := random.Check(o.rand); err != nil {
		return nil, apperrors.EntropyUnavailable(err)
	}

	databaseURL := strings.TrimSpace(cfg.Database.URL)
	if databaseURL == "" {
		return nil, apperrors.MissingConfig("database.url")
	}

	var generated []string

	secret := cfg.JWT.Secret
	if secret == "" {
		s, err := random.String(o.rand, GeneratedSecretLength)
		if err != nil {
			return nil, apperrors.EntropyUnavailable(err)
		}
		secret = s
		generated = append(generated, SecretJWT)
		log.Warn("jwt.secret not set, generated an ephemeral signing secret; tokens will not survive a restart",
			logger.Fields(logger.FieldSource, "random"))
	}

	var key []byte
	if cfg.Encryption.Key == "" {
		k, err := random.Bytes(o.rand, encryption.KeySize)
		if err != nil {
			return nil, apperrors.EntropyUnavailable(err)
		}
		key = k
		generated = append(generated, SecretEncryptionKey)
		log.Warn("encryption.key not set, generated an ephemeral key; encrypted values will not survive a restart",
			logger.Fields(logger.FieldSource, "random"))
	} else {
		k, err := encryption.ParseKey(cfg.Encryption.Key)
		if err != nil {
			return nil, err
		}
		key = k
	}

	if err := cfg.validateTunables(); err != nil {
		return nil, err
	}

	jwtCfg := cfg.JWT
	jwtCfg.Secret = secret
	tokens, err := jwt.NewService(jwtCfg, jwt.WithClock(o.now), jwt.WithRandom(o.rand))
	if err != nil {
		return nil, err
	}
	cipher, err := encryption.NewService(key, encryption.WithRandom(o.rand))
	if err != nil {
		return nil, err
	}
	hasher := password.NewHasher(cfg.Password, password.WithRandom(o.rand))

	// Keep no copy of secrets in the retained config.
	cfg.JWT.Secret = ""
	cfg.Encryption.Key = ""
	cfg.Database.URL = ""

	c := &Context{
		cfg:           cfg,
		jwtSecret:     []byte(secret),
		encryptionKey: key,
		databaseURL:   databaseURL,
		generated:     generated,
		limiter:       password.NewLimiter(hasher, cfg.Password.MaxConcurrent),
		cipher:        cipher,
		tokens:        tokens,
		log:           log,
		metrics:       o.metrics,
		rand:          o.rand,
	}

	tokenCfg := tokens.Config()
	log.Info("secure context initialized", logger.Fields(
		logger.FieldAlgorithm, cfg.Password.Describe(),
		"token", tokenCfg.Describe(),
		"generated", len(generated),
	))
	return c, nil
}

// DatabaseURL returns the configured database locator.
func (c *Context) DatabaseURL() string { return c.databaseURL }

// EncryptionKey returns a copy of the 32-byte encryption key.
func (c *Context) EncryptionKey() []byte { return bytes.Clone(c.encryptionKey) }

// JWTSecret returns a copy of the token signing secret.
func (c *Context) JWTSecret() []byte { return bytes.Clone(c.jwtSecret) }

// GeneratedSecrets names the secrets New had to generate because they were
// not configured. Empty when every secret came from configuration.
func (c *Context) GeneratedSecrets() []string {
	return append([]string(nil), c.generated...)
}

// Config returns the effective configuration with secrets removed.
func (c *Context) Config() Config { return c.cfg }
