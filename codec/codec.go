package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEncoding is wrapped by every Decode failure.
var ErrInvalidEncoding = errors.New("codec: invalid base64 encoding")

// Encode returns the padded standard base64 encoding of b.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// EncodeString encodes the bytes of s.
func EncodeString(s string) string {
	return Encode([]byte(s))
}

// Decode parses padded or unpadded standard base64 text.
// Line breaks are rejected along with every other byte outside the alphabet.
func Decode(text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		return nil, fmt.Errorf("%w: illegal byte %#x at offset %d", ErrInvalidEncoding, text[i], i)
	}

	enc := base64.StdEncoding.Strict()
	if !strings.ContainsRune(text, '=') && len(text)%4 != 0 {
		enc = base64.RawStdEncoding.Strict()
	}

	b, err := enc.DecodeString(text)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			off := int(corrupt)
			if off < len(text) {
				return nil, fmt.Errorf("%w: illegal byte %#x at offset %d", ErrInvalidEncoding, text[off], off)
			}
			return nil, fmt.Errorf("%w: truncated input at offset %d", ErrInvalidEncoding, off)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return b, nil
}

// DecodeString decodes text and returns the result as a string.
func DecodeString(text string) (string, error) {
	b, err := Decode(text)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
