// Package authctx carries verified token claims through a context.Context.
//
// Usage:
//
//	ctx, err := sc.Authenticate(ctx, bearer)
//	if err != nil {
//	    return err
//	}
//	userID := authctx.UserID(ctx)
package authctx

import (
	"context"

	"github.com/kbukum/securekit/auth/jwt"
	apperrors "github.com/kbukum/securekit/errors"
)

// contextKey is unexported so no other package can collide with it.
type contextKey struct{}

var claimsKey = contextKey{}

// WithClaims returns a copy of ctx carrying claims. Only store claims that
// have already been verified.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Claims returns the claims stored in ctx.
func Claims(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}

// Require returns the stored claims or an INVALID_TOKEN error when the
// context was never authenticated.
func Require(ctx context.Context) (*jwt.Claims, error) {
	claims, ok := Claims(ctx)
	if !ok {
		return nil, apperrors.InvalidToken("no verified claims in context")
	}
	return claims, nil
}

// UserID returns the authenticated user ID, or "".
func UserID(ctx context.Context) string {
	if claims, ok := Claims(ctx); ok {
		return claims.UserID
	}
	return ""
}

// Role returns the authenticated role, or "".
func Role(ctx context.Context) string {
	if claims, ok := Claims(ctx); ok {
		return claims.Role
	}
	return ""
}
