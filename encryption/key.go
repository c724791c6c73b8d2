package encryption

import (
	"github.com/kbukum/securekit/codec"
	apperrors "github.com/kbukum/securekit/errors"
)

// ParseKey resolves configured key text into 32 key bytes.
// It accepts either exactly 32 raw bytes of text or the standard base64
// encoding of 32 bytes.
func ParseKey(text string) ([]byte, error) {
	if len(text) == KeySize {
		return []byte(text), nil
	}
	if b, err := codec.Decode(text); err == nil && len(b) == KeySize {
		return b, nil
	}
	return nil, apperrors.InvalidKey("encryption key must be 32 raw bytes or base64 of 32 bytes")
}
