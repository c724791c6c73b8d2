package jwt

import gojwt "github.com/golang-jwt/jwt/v5"

// Token types carried in the "typ" header.
const (
	TypeAccess  = "JWT"
	TypeRefresh = "refresh"
)

// Claims is the claim set of access and refresh tokens.
type Claims struct {
	gojwt.RegisteredClaims

	UserID          string `json:"user_id,omitempty"`
	Role            string `json:"role,omitempty"`
	TokenType       string `json:"token_type,omitempty"`
	ProtocolVersion string `json:"harmonic_protocol_version,omitempty"`

	// Type is the "typ" header of the parsed token. Not part of the payload.
	Type string `json:"-"`
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.Type == TypeRefresh && c.TokenType == TypeRefresh
}
