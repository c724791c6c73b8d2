package authctx

import (
	"context"
	"testing"

	"github.com/kbukum/securekit/auth/jwt"
	apperrors "github.com/kbukum/securekit/errors"
)

func TestClaimsRoundTrip(t *testing.T) {
	claims := &jwt.Claims{UserID: "u1", Role: "admin"}
	ctx := WithClaims(context.Background(), claims)

	got, ok := Claims(ctx)
	if !ok || got != claims {
		t.Fatalf("expected stored claims, got %v (%v)", got, ok)
	}
	if UserID(ctx) != "u1" || Role(ctx) != "admin" {
		t.Errorf("unexpected accessors %q/%q", UserID(ctx), Role(ctx))
	}
	if c, err := Require(ctx); err != nil || c != claims {
		t.Errorf("Require failed: %v", err)
	}
}

func TestUnauthenticatedContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"empty", context.Background()},
		{"nil claims", WithClaims(context.Background(), nil)},
		{"foreign value", context.WithValue(context.Background(), struct{}{}, "x")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Claims(tc.ctx); ok {
				t.Error("expected no claims")
			}
			if UserID(tc.ctx) != "" || Role(tc.ctx) != "" {
				t.Error("expected empty accessors")
			}
			if _, err := Require(tc.ctx); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
				t.Errorf("expected INVALID_TOKEN, got %v", err)
			}
		})
	}
}
