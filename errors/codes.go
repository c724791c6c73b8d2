package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates empty or malformed caller-supplied data.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Cipher errors
const (
	// ErrCodeMalformedCiphertext indicates an envelope that cannot be decoded or is too short.
	ErrCodeMalformedCiphertext ErrorCode = "MALFORMED_CIPHERTEXT"
	// ErrCodeAuthenticationFailed indicates the authentication tag did not verify.
	// It signals tampering or a wrong key and is never a format error.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
)

// Token errors
const (
	// ErrCodeMalformedToken indicates a token that is not a well-formed signed claim set.
	ErrCodeMalformedToken ErrorCode = "MALFORMED_TOKEN"
	// ErrCodeSignatureInvalid indicates a signature or algorithm mismatch.
	ErrCodeSignatureInvalid ErrorCode = "SIGNATURE_INVALID"
	// ErrCodeIssuerMismatch indicates a token issued by someone else.
	ErrCodeIssuerMismatch ErrorCode = "ISSUER_MISMATCH"
	// ErrCodeTokenExpired indicates the token is past its expiry.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeTokenNotYetValid indicates the token was issued in the future.
	ErrCodeTokenNotYetValid ErrorCode = "TOKEN_NOT_YET_VALID"
	// ErrCodeInvalidToken indicates a valid token used for the wrong purpose.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeMissingClaim indicates a verified token without a required claim.
	ErrCodeMissingClaim ErrorCode = "MISSING_CLAIM"
)

// Initialization errors (fatal)
const (
	// ErrCodeMissingConfig indicates a required configuration value is absent.
	ErrCodeMissingConfig ErrorCode = "MISSING_CONFIG"
	// ErrCodeInvalidKey indicates key material of the wrong size or form.
	ErrCodeInvalidKey ErrorCode = "INVALID_KEY"
	// ErrCodeEntropyUnavailable indicates secure randomness could not be obtained.
	ErrCodeEntropyUnavailable ErrorCode = "ENTROPY_UNAVAILABLE"
)

// Internal errors
const (
	// ErrCodeCryptoFailure indicates a cryptographic primitive failed for a single call.
	ErrCodeCryptoFailure ErrorCode = "CRYPTO_FAILURE"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeMissingConfig:      true,
	ErrCodeInvalidKey:         true,
	ErrCodeEntropyUnavailable: true,
}

// IsFatalCode returns true if the code must abort startup.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
