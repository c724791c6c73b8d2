// Package password provides argon2id password hashing and verification.
//
// Hashes are stored as "base64(digest):base64(salt)". The digest is always
// 32 bytes; the salt defaults to 16 random bytes. Verification re-derives the
// digest with the stored salt and compares in constant time.
//
// Usage:
//
//	hasher := password.New()
//	stored, err := hasher.Hash("my-password")
//	ok := hasher.Verify("my-password", stored)
package password

import (
	"crypto/subtle"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/kbukum/securekit/codec"
	apperrors "github.com/kbukum/securekit/errors"
	"github.com/kbukum/securekit/random"
	"github.com/kbukum/securekit/validation"
)

// separator joins digest and salt in the stored form.
const separator = ":"

// Hasher derives and verifies argon2id password hashes.
// It is immutable after construction and safe for concurrent use.
type Hasher struct {
	time      uint32
	memory    uint32
	threads   uint8
	saltLen   int
	minLength int
	rand      io.Reader
}

// Option configures the hasher.
type Option func(*Hasher)

// WithTime sets the number of iterations (default: 3). Zero is ignored.
func WithTime(t uint32) Option {
	return func(h *Hasher) {
		if t > 0 {
			h.time = t
		}
	}
}

// WithMemory sets the memory usage in KiB (default: 64*1024 = 64MiB).
// Zero is ignored; New raises anything below 8*threads to that floor.
func WithMemory(m uint32) Option {
	return func(h *Hasher) {
		if m > 0 {
			h.memory = m
		}
	}
}

// WithThreads sets the parallelism (default: 4). Zero is ignored.
func WithThreads(t uint8) Option {
	return func(h *Hasher) {
		if t > 0 {
			h.threads = t
		}
	}
}

// WithSaltLength sets the generated salt size in bytes (default: 16).
func WithSaltLength(n int) Option {
	return func(h *Hasher) {
		if n > 0 {
			h.saltLen = n
		}
	}
}

// WithMinLength sets the minimum accepted password length (default: 1).
func WithMinLength(n int) Option {
	return func(h *Hasher) {
		if n > 0 {
			h.minLength = n
		}
	}
}

// WithRandom sets the salt source (default: random.Reader).
func WithRandom(r io.Reader) Option {
	return func(h *Hasher) { h.rand = r }
}

// New creates an argon2id password hasher with t=3, m=64MiB, p=4 unless overridden.
func New(opts ...Option) *Hasher {
	h := &Hasher{
		time:      DefaultTime,
		memory:    DefaultMemory,
		threads:   DefaultThreads,
		saltLen:   DefaultSaltLength,
		minLength: 1,
		rand:      random.Reader,
	}
	for _, opt := range opts {
		opt(h)
	}
	// argon2 requires at least 8 KiB per lane.
	if floor := minMemory(h.threads); h.memory < floor {
		h.memory = floor
	}
	return h
}

func minMemory(threads uint8) uint32 {
	return 8 * uint32(threads)
}

// Params returns the effective work factor.
func (h *Hasher) Params() (time, memory uint32, threads uint8) {
	return h.time, h.memory, h.threads
}

// Hash derives a hash of password with a freshly generated salt.
func (h *Hasher) Hash(password string) (string, error) {
	if err := h.checkPassword(password); err != nil {
		return "", err
	}
	salt, err := random.Bytes(h.rand, h.saltLen)
	if err != nil {
		return "", apperrors.CryptoFailure("generate salt", err)
	}
	return h.encode(password, salt), nil
}

// HashWithSalt derives a hash of password with the given salt.
// The result is deterministic for a given password and salt.
func (h *Hasher) HashWithSalt(password string, salt []byte) (string, error) {
	if err := h.checkPassword(password); err != nil {
		return "", err
	}
	if appErr := validation.New().RequiredBytes("salt", salt).Validate(); appErr != nil {
		return "", appErr
	}
	return h.encode(password, salt), nil
}

// Verify reports whether password matches the stored hash.
// It fails closed: empty input or a malformed stored hash yields false.
func (h *Hasher) Verify(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}
	encodedDigest, encodedSalt, found := strings.Cut(stored, separator)
	if !found || encodedDigest == "" || encodedSalt == "" {
		return false
	}
	expected, err := codec.Decode(encodedDigest)
	if err != nil || len(expected) != int(KeyLength) {
		return false
	}
	salt, err := codec.Decode(encodedSalt)
	if err != nil || len(salt) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(h.derive(password, salt), expected) == 1
}

func (h *Hasher) checkPassword(password string) error {
	if password == "" {
		return apperrors.InvalidInput("password", "password must not be empty")
	}
	if len(password) < h.minLength {
		return apperrors.InvalidInput("password", "password is too short").
			WithDetail("min_length", h.minLength)
	}
	return nil
}

func (h *Hasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, KeyLength)
}

func (h *Hasher) encode(password string, salt []byte) string {
	return codec.Encode(h.derive(password, salt)) + separator + codec.Encode(salt)
}
