package password

import (
	"fmt"

	"github.com/kbukum/securekit/validation"
)

// Default argon2id work factor. These values are a public guarantee of the
// stored hash format: changing them invalidates every existing hash.
const (
	DefaultTime          uint32 = 3
	DefaultMemory        uint32 = 64 * 1024 // KiB
	DefaultThreads       uint8  = 4
	DefaultSaltLength           = 16
	DefaultMaxConcurrent        = 4

	// KeyLength is the derived digest size in bytes.
	KeyLength uint32 = 32
)

// Config configures password hashing behavior.
// Loadable from YAML/env via mapstructure tags.
type Config struct {
	// Time is the number of argon2id iterations (default: 3).
	Time uint32 `mapstructure:"time" validate:"gte=1"`

	// Memory is the argon2id memory usage in KiB (default: 65536 = 64MiB).
	Memory uint32 `mapstructure:"memory" validate:"gte=8"`

	// Threads is the argon2id parallelism (default: 4).
	Threads uint8 `mapstructure:"threads" validate:"gte=1"`

	// SaltLength is the size of generated salts in bytes (default: 16).
	SaltLength int `mapstructure:"salt_length" validate:"gte=8"`

	// MinLength is the minimum password length (default: 1).
	MinLength int `mapstructure:"min_length" validate:"gte=1"`

	// MaxConcurrent bounds simultaneous derivations through a Limiter (default: 4).
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"gte=1"`
}

// ApplyDefaults sets the documented work factor for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Time == 0 {
		c.Time = DefaultTime
	}
	if c.Memory == 0 {
		c.Memory = DefaultMemory
	}
	if c.Threads == 0 {
		c.Threads = DefaultThreads
	}
	if c.SaltLength == 0 {
		c.SaltLength = DefaultSaltLength
	}
	if c.MinLength == 0 {
		c.MinLength = 1
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
}

// Validate checks the configuration. It returns an INVALID_INPUT AppError
// naming every bad field.
func (c *Config) Validate() error {
	if appErr := validation.New().
		Min("time", int(c.Time), 1).
		Min("threads", int(c.Threads), 1).
		Custom(c.Memory >= minMemory(c.Threads), "memory",
			fmt.Sprintf("must be at least 8*threads KiB (got %d)", c.Memory)).
		Min("salt_length", c.SaltLength, 8).
		Min("min_length", c.MinLength, 1).
		Min("max_concurrent", c.MaxConcurrent, 1).
		Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Describe returns the work factor for startup summaries.
// Example: "argon2id t=3 m=65536KiB p=4"
func (c *Config) Describe() string {
	return fmt.Sprintf("argon2id t=%d m=%dKiB p=%d", c.Time, c.Memory, c.Threads)
}

// NewHasher creates a Hasher from configuration. Extra options are applied
// after the configured work factor.
func NewHasher(cfg Config, opts ...Option) *Hasher {
	cfg.ApplyDefaults()
	return New(append([]Option{
		WithTime(cfg.Time),
		WithMemory(cfg.Memory),
		WithThreads(cfg.Threads),
		WithSaltLength(cfg.SaltLength),
		WithMinLength(cfg.MinLength),
	}, opts...)...)
}
