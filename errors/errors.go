package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type returned by securekit components.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the error must abort process startup.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error. Never secret material.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError, marking initialization codes as fatal.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// --- Input ---

// InvalidInput creates a new AppError for invalid caller-supplied input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// --- Cipher ---

// MalformedCiphertext creates a new AppError for an undecodable or truncated envelope.
func MalformedCiphertext(reason string) *AppError {
	return &AppError{
		Code: ErrCodeMalformedCiphertext, Message: fmt.Sprintf("Malformed ciphertext: %s", reason),
	}
}

// AuthenticationFailed creates a new AppError for a ciphertext whose tag did not verify.
func AuthenticationFailed() *AppError {
	return &AppError{
		Code: ErrCodeAuthenticationFailed, Message: "Ciphertext authentication failed: data was tampered with or the key is wrong.",
	}
}

// --- Tokens ---

// MalformedToken creates a new AppError for a token that cannot be decoded.
func MalformedToken() *AppError {
	return &AppError{Code: ErrCodeMalformedToken, Message: "Token is malformed."}
}

// SignatureInvalid creates a new AppError for a token signature that does not verify.
func SignatureInvalid() *AppError {
	return &AppError{Code: ErrCodeSignatureInvalid, Message: "Token signature is invalid."}
}

// IssuerMismatch creates a new AppError for a token from an unexpected issuer.
func IssuerMismatch(expected string) *AppError {
	return &AppError{
		Code: ErrCodeIssuerMismatch, Message: "Token issuer does not match.",
		Details: map[string]any{"expected_issuer": expected},
	}
}

// TokenExpired creates a new AppError for an expired token.
func TokenExpired() *AppError {
	return &AppError{Code: ErrCodeTokenExpired, Message: "Token has expired."}
}

// TokenNotYetValid creates a new AppError for a token issued in the future.
func TokenNotYetValid() *AppError {
	return &AppError{Code: ErrCodeTokenNotYetValid, Message: "Token is not valid yet."}
}

// InvalidToken creates a new AppError for a token presented for the wrong purpose.
func InvalidToken(reason string) *AppError {
	return &AppError{Code: ErrCodeInvalidToken, Message: fmt.Sprintf("Invalid token: %s", reason)}
}

// MissingClaim creates a new AppError for a verified token lacking a required claim.
func MissingClaim(claim string) *AppError {
	return &AppError{
		Code: ErrCodeMissingClaim, Message: fmt.Sprintf("Token is missing required claim: %s", claim),
		Details: map[string]any{"claim": claim},
	}
}

// --- Initialization ---

// MissingConfig creates a new fatal AppError for an absent required setting.
func MissingConfig(key string) *AppError {
	return &AppError{
		Code: ErrCodeMissingConfig, Message: fmt.Sprintf("Required configuration %s is not set.", key),
		Fatal: true, Details: map[string]any{"key": key},
	}
}

// InvalidKey creates a new fatal AppError for unusable key material.
func InvalidKey(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidKey, Message: fmt.Sprintf("Invalid key: %s", reason),
		Fatal: true,
	}
}

// EntropyUnavailable creates a new fatal AppError for an unusable random source.
func EntropyUnavailable(cause error) *AppError {
	return &AppError{
		Code: ErrCodeEntropyUnavailable, Message: "Secure random number generator is not available.",
		Fatal: true, Cause: cause,
	}
}

// --- Internal ---

// CryptoFailure creates a new AppError for a failed cryptographic primitive.
func CryptoFailure(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCryptoFailure, Message: fmt.Sprintf("Cryptographic operation %s failed.", operation),
		Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}
