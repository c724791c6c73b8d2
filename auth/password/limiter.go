package password

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds the number of concurrent derivations. Each argon2id call
// allocates the configured memory (64MiB by default), so bulk callers should
// go through a Limiter rather than fanning out unbounded goroutines.
type Limiter struct {
	hasher *Hasher
	sem    *semaphore.Weighted
}

// NewLimiter wraps hasher so that at most maxConcurrent derivations run at once.
func NewLimiter(hasher *Hasher, maxConcurrent int) *Limiter {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Limiter{hasher: hasher, sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

// Hash waits for a slot and hashes password. It returns ctx.Err() if the
// context is done before a slot frees up.
func (l *Limiter) Hash(ctx context.Context, password string) (string, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer l.sem.Release(1)
	return l.hasher.Hash(password)
}

// HashWithSalt waits for a slot and hashes password with salt.
func (l *Limiter) HashWithSalt(ctx context.Context, password string, salt []byte) (string, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer l.sem.Release(1)
	return l.hasher.HashWithSalt(password, salt)
}

// Verify waits for a slot and verifies password against stored.
// A non-nil error means the check did not run; the boolean is then false.
func (l *Limiter) Verify(ctx context.Context, password, stored string) (bool, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer l.sem.Release(1)
	return l.hasher.Verify(password, stored), nil
}
