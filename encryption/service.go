package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	"github.com/kbukum/securekit/codec"
	apperrors "github.com/kbukum/securekit/errors"
	"github.com/kbukum/securekit/random"
	"github.com/kbukum/securekit/validation"
)

const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32
	// IVSize is the GCM nonce size used in the envelope.
	IVSize = 16
	// TagSize is the GCM authentication tag size.
	TagSize = 16
	// MinEnvelopeSize is the decoded size of an envelope with empty ciphertext.
	MinEnvelopeSize = IVSize + TagSize
)

// Service handles encryption/decryption of sensitive data using AES-256-GCM.
// It is safe for concurrent use.
type Service struct {
	gcm  cipher.AEAD
	rand io.Reader
}

// Option configures the encryption service.
type Option func(*Service)

// WithRandom sets the IV source (default: random.Reader).
func WithRandom(r io.Reader) Option {
	return func(s *Service) { s.rand = r }
}

// NewService creates a new encryption service with a 32-byte key.
func NewService(key []byte, opts ...Option) (*Service, error) {
	if appErr := validation.New().ExactBytes("key", key, KeySize).Validate(); appErr != nil {
		return nil, apperrors.InvalidKey(appErr.Message).WithCause(appErr)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, apperrors.CryptoFailure("create cipher", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, apperrors.CryptoFailure("create GCM", err)
	}

	s := &Service{gcm: gcm, rand: random.Reader}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Encrypt encrypts plaintext under a fresh random IV and returns the
// base64 envelope. Empty plaintext yields an empty envelope.
func (s *Service) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	iv, err := random.Bytes(s.rand, IVSize)
	if err != nil {
		return "", apperrors.CryptoFailure("generate IV", err)
	}

	// Seal appends ciphertext||tag to iv.
	sealed := s.gcm.Seal(iv, iv, []byte(plaintext), nil)
	return codec.Encode(sealed), nil
}

// Decrypt opens a base64 envelope produced by Encrypt.
// An empty envelope yields empty plaintext.
func (s *Service) Decrypt(envelope string) (string, error) {
	if envelope == "" {
		return "", nil
	}

	data, err := codec.Decode(envelope)
	if err != nil {
		return "", apperrors.MalformedCiphertext("envelope is not valid base64").WithCause(err)
	}
	if len(data) < MinEnvelopeSize {
		return "", apperrors.MalformedCiphertext(
			fmt.Sprintf("envelope must be at least %d bytes (got %d)", MinEnvelopeSize, len(data)))
	}

	iv, sealed := data[:IVSize], data[IVSize:]
	plaintext, err := s.gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", apperrors.AuthenticationFailed()
	}

	return string(plaintext), nil
}
