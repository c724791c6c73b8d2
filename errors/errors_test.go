package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad input")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "bad input" {
		t.Errorf("expected message 'bad input', got %q", err.Message)
	}
	if err.Fatal {
		t.Error("INVALID_INPUT should not be fatal")
	}
}

func TestAppError_New_Fatal(t *testing.T) {
	for _, code := range []ErrorCode{ErrCodeMissingConfig, ErrCodeInvalidKey, ErrCodeEntropyUnavailable} {
		if !New(code, "x").Fatal {
			t.Errorf("%s should be fatal", code)
		}
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	err := Internal(fmt.Errorf("boom"))
	if !strings.Contains(err.Error(), "cause: boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := CryptoFailure("seal", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Details["operation"] != "seal" {
		t.Errorf("expected operation=seal, got %v", err.Details["operation"])
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := TokenExpired().WithDetail("jti", "abc").WithDetails(map[string]any{"user_id": "u1"})
	if err.Details["jti"] != "abc" || err.Details["user_id"] != "u1" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestInvalidInput_EmptyField(t *testing.T) {
	err := InvalidInput("", "empty")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
	err = InvalidInput("password", "must not be empty")
	if err.Details["field"] != "password" {
		t.Errorf("expected field=password, got %v", err.Details["field"])
	}
}

func TestConstructors_Codes(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  ErrorCode
		fatal bool
	}{
		{"malformed ciphertext", MalformedCiphertext("short"), ErrCodeMalformedCiphertext, false},
		{"authentication failed", AuthenticationFailed(), ErrCodeAuthenticationFailed, false},
		{"malformed token", MalformedToken(), ErrCodeMalformedToken, false},
		{"signature invalid", SignatureInvalid(), ErrCodeSignatureInvalid, false},
		{"issuer mismatch", IssuerMismatch("iss"), ErrCodeIssuerMismatch, false},
		{"expired", TokenExpired(), ErrCodeTokenExpired, false},
		{"not yet valid", TokenNotYetValid(), ErrCodeTokenNotYetValid, false},
		{"invalid token", InvalidToken("wrong type"), ErrCodeInvalidToken, false},
		{"missing claim", MissingClaim("user_id"), ErrCodeMissingClaim, false},
		{"missing config", MissingConfig("DATABASE_URL"), ErrCodeMissingConfig, true},
		{"invalid key", InvalidKey("size"), ErrCodeInvalidKey, true},
		{"entropy", EntropyUnavailable(nil), ErrCodeEntropyUnavailable, true},
		{"validation", Validation("bad"), ErrCodeInvalidInput, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Fatal != tc.fatal {
				t.Errorf("expected fatal=%v, got %v", tc.fatal, tc.err.Fatal)
			}
		})
	}
}

func TestHasCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("verify: %w", SignatureInvalid())
	if !HasCode(wrapped, ErrCodeSignatureInvalid) {
		t.Error("expected HasCode to see through wrapping")
	}
	if HasCode(wrapped, ErrCodeTokenExpired) {
		t.Error("unexpected code match")
	}
	if HasCode(nil, ErrCodeSignatureInvalid) {
		t.Error("nil error should not have a code")
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	if code := CodeOf(stderrors.New("plain")); code != "" {
		t.Errorf("expected empty code, got %s", code)
	}
	if IsAppError(stderrors.New("plain")) {
		t.Error("plain error should not be an AppError")
	}
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("ctx: %w", AuthenticationFailed()))
	if !ok {
		t.Fatal("expected AsAppError to succeed")
	}
	if appErr.Code != ErrCodeAuthenticationFailed {
		t.Errorf("expected AUTHENTICATION_FAILED, got %s", appErr.Code)
	}
}
