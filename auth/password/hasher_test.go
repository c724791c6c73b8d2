package password

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/securekit/codec"
	apperrors "github.com/kbukum/securekit/errors"
)

// fastHasher keeps argon2id cheap for tests that exercise format logic.
func fastHasher(opts ...Option) *Hasher {
	base := []Option{WithTime(1), WithMemory(8 * 1024), WithThreads(1)}
	return New(append(base, opts...)...)
}

func TestHashAndVerify_DefaultParameters(t *testing.T) {
	h := New()
	stored, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !h.Verify("correct horse battery staple", stored) {
		t.Error("expected password to verify")
	}
	if h.Verify("Correct horse battery staple", stored) {
		t.Error("expected wrong password to fail")
	}
}

func TestHash_Format(t *testing.T) {
	h := fastHasher()
	stored, err := h.Hash("p@ssw0rd")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	digest, salt, found := strings.Cut(stored, ":")
	if !found {
		t.Fatalf("expected ':' separator in %q", stored)
	}
	rawDigest, err := codec.Decode(digest)
	if err != nil {
		t.Fatalf("digest is not base64: %v", err)
	}
	if len(rawDigest) != 32 {
		t.Errorf("expected 32-byte digest, got %d", len(rawDigest))
	}
	rawSalt, err := codec.Decode(salt)
	if err != nil {
		t.Fatalf("salt is not base64: %v", err)
	}
	if len(rawSalt) != DefaultSaltLength {
		t.Errorf("expected %d-byte salt, got %d", DefaultSaltLength, len(rawSalt))
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	h := fastHasher()
	_, err := h.Hash("")
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	_, err = h.HashWithSalt("", []byte("0123456789abcdef"))
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestHash_MinLength(t *testing.T) {
	h := fastHasher(WithMinLength(8))
	if _, err := h.Hash("short"); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for short password, got %v", err)
	}
	if _, err := h.Hash("long enough"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHash_FreshSalts(t *testing.T) {
	h := fastHasher()
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Error("hashing the same password twice should use different salts")
	}
	if !h.Verify("same", a) || !h.Verify("same", b) {
		t.Error("both hashes should verify")
	}
}

func TestHashWithSalt_Deterministic(t *testing.T) {
	h := fastHasher()
	salt := []byte("fixed-salt-value")
	a, err := h.HashWithSalt("secret", salt)
	if err != nil {
		t.Fatalf("HashWithSalt failed: %v", err)
	}
	b, _ := h.HashWithSalt("secret", salt)
	if a != b {
		t.Errorf("expected deterministic output, got %q and %q", a, b)
	}
	if !strings.HasSuffix(a, ":"+codec.Encode(salt)) {
		t.Errorf("expected encoded salt suffix, got %q", a)
	}
	if !h.Verify("secret", a) {
		t.Error("expected verification to succeed")
	}
}

func TestHashWithSalt_EmptySalt(t *testing.T) {
	h := fastHasher()
	if _, err := h.HashWithSalt("secret", nil); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestNew_ZeroWorkFactorsFallBack(t *testing.T) {
	tests := []struct {
		name        string
		opts        []Option
		wantTime    uint32
		wantMemory  uint32
		wantThreads uint8
	}{
		{"zero time", []Option{WithTime(0), WithMemory(64), WithThreads(1)}, DefaultTime, 64, 1},
		{"zero threads", []Option{WithTime(1), WithMemory(64), WithThreads(0)}, 1, 64, DefaultThreads},
		{"zero memory", []Option{WithTime(1), WithMemory(0), WithThreads(1)}, 1, DefaultMemory, 1},
		{"memory below lanes", []Option{WithTime(1), WithMemory(8), WithThreads(16)}, 1, 128, 16},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := New(tc.opts...)
			tm, mem, th := h.Params()
			if tm != tc.wantTime || mem != tc.wantMemory || th != tc.wantThreads {
				t.Fatalf("Params() = (%d, %d, %d), want (%d, %d, %d)",
					tm, mem, th, tc.wantTime, tc.wantMemory, tc.wantThreads)
			}
			if tc.wantMemory == DefaultMemory {
				return
			}
			stored, err := h.Hash("pw")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if !h.Verify("pw", stored) {
				t.Error("expected password to verify")
			}
		})
	}
}

func TestNewHasher_ZeroConfigUsesDefaults(t *testing.T) {
	h := NewHasher(Config{})
	tm, mem, th := h.Params()
	if tm != DefaultTime || mem != DefaultMemory || th != DefaultThreads {
		t.Errorf("expected default work factor, got (%d, %d, %d)", tm, mem, th)
	}
}

func TestHash_SaltSourceFailure(t *testing.T) {
	h := fastHasher(WithRandom(bytes.NewReader(nil)))
	_, err := h.Hash("secret")
	if !apperrors.HasCode(err, apperrors.ErrCodeCryptoFailure) {
		t.Errorf("expected CRYPTO_FAILURE, got %v", err)
	}
}

func TestVerify_FailsClosed(t *testing.T) {
	h := fastHasher()
	valid, _ := h.Hash("secret")
	digest, salt, _ := strings.Cut(valid, ":")

	tests := []struct {
		name     string
		password string
		stored   string
	}{
		{"empty password", "", valid},
		{"empty hash", "secret", ""},
		{"no separator", "secret", digest + salt},
		{"empty digest", "secret", ":" + salt},
		{"empty salt", "secret", digest + ":"},
		{"invalid salt encoding", "secret", digest + ":!!!!"},
		{"invalid digest encoding", "secret", "!!!!:" + salt},
		{"short digest", "secret", codec.Encode([]byte("short")) + ":" + salt},
		{"extra separator in salt", "secret", valid + ":extra"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if h.Verify(tc.password, tc.stored) {
				t.Errorf("expected Verify(%q, %q) to be false", tc.password, tc.stored)
			}
		})
	}
}

func TestVerify_DifferentWorkFactor(t *testing.T) {
	stored, _ := fastHasher().Hash("secret")
	other := New(WithTime(2), WithMemory(8*1024), WithThreads(1))
	if other.Verify("secret", stored) {
		t.Error("hash from a different work factor should not verify")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Time != 3 || cfg.Memory != 64*1024 || cfg.Threads != 4 {
		t.Errorf("unexpected work factor: %+v", cfg)
	}
	if cfg.SaltLength != 16 || cfg.MinLength != 1 || cfg.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if got := cfg.Describe(); got != "argon2id t=3 m=65536KiB p=4" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"memory below threads", func(c *Config) { c.Memory = 16; c.Threads = 4 }, "memory"},
		{"short salt", func(c *Config) { c.SaltLength = 4 }, "salt_length"},
		{"negative min length", func(c *Config) { c.MinLength = -1 }, "min_length"},
		{"negative concurrency", func(c *Config) { c.MaxConcurrent = -1 }, "max_concurrent"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestNewHasher_FromConfig(t *testing.T) {
	h := NewHasher(Config{Time: 1, Memory: 8 * 1024, Threads: 1, SaltLength: 24})
	stored, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	_, salt, _ := strings.Cut(stored, ":")
	raw, _ := codec.Decode(salt)
	if len(raw) != 24 {
		t.Errorf("expected 24-byte salt, got %d", len(raw))
	}
}

func TestLimiter_HashAndVerify(t *testing.T) {
	l := NewLimiter(fastHasher(), 2)
	ctx := context.Background()

	stored, err := l.Hash(ctx, "secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := l.Verify(ctx, "secret", stored)
			if err != nil {
				t.Errorf("Verify failed: %v", err)
			}
			results[i] = ok
		}(i)
	}
	wg.Wait()
	for i, ok := range results {
		if !ok {
			t.Errorf("verification %d returned false", i)
		}
	}
}

func TestLimiter_RespectsCancellation(t *testing.T) {
	l := NewLimiter(fastHasher(), 1)
	if err := l.sem.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ok, err := l.Verify(ctx, "secret", "irrelevant:value")
	if ok {
		t.Error("expected false when no slot was acquired")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if _, err := l.Hash(ctx, "secret"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if _, err := l.HashWithSalt(ctx, "secret", []byte("0123456789abcdef")); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded from salted hash, got %v", err)
	}
}

func TestLimiter_HashWithSalt(t *testing.T) {
	h := fastHasher()
	l := NewLimiter(h, 1)
	salt := []byte("0123456789abcdef")

	got, err := l.HashWithSalt(context.Background(), "secret", salt)
	if err != nil {
		t.Fatalf("HashWithSalt failed: %v", err)
	}
	want, _ := h.HashWithSalt("secret", salt)
	if got != want {
		t.Errorf("expected limiter result %q to match hasher result %q", got, want)
	}
	if _, err := l.HashWithSalt(context.Background(), "secret", nil); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty salt, got %v", err)
	}
}

func TestNewLimiter_ClampsConcurrency(t *testing.T) {
	l := NewLimiter(fastHasher(), 0)
	if _, err := l.Hash(context.Background(), "secret"); err != nil {
		t.Errorf("expected limiter with clamped concurrency to work: %v", err)
	}
}
