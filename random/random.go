// Package random generates cryptographically secure bytes, secrets, and
// identifiers for salts, IVs, generated signing material, and token IDs.
//
// Every function takes the Source to read from so callers and tests can
// substitute a deterministic or failing reader; production code passes
// Reader.
package random

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/kbukum/securekit/codec"
)

// Source is any reader of cryptographically secure random bytes.
type Source = io.Reader

// Reader is the process CSPRNG.
var Reader Source = rand.Reader

// sampleSize is the number of bytes Check reads.
const sampleSize = 32

// Bytes returns n random bytes read from src.
func Bytes(src Source, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("random: negative length %d", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(src, b); err != nil {
		return nil, fmt.Errorf("random: read %d bytes: %w", n, err)
	}
	return b, nil
}

// String returns an n-character secret: the base64 text of n random bytes
// truncated to n characters.
func String(src Source, n int) (string, error) {
	b, err := Bytes(src, n)
	if err != nil {
		return "", err
	}
	return codec.Encode(b)[:n], nil
}

// Identifier returns a random version 4 UUID string.
func Identifier(src Source) (string, error) {
	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return "", fmt.Errorf("random: identifier: %w", err)
	}
	return id.String(), nil
}

// Check verifies that src yields non-degenerate output.
// An all-zero sample is treated as an unseeded generator.
func Check(src Source) error {
	b, err := Bytes(src, sampleSize)
	if err != nil {
		return err
	}
	for _, v := range b {
		if v != 0 {
			return nil
		}
	}
	return errors.New("random: source returned an all-zero sample")
}
