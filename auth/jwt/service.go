// Package jwt issues and verifies HMAC-signed access and refresh tokens.
//
// Access tokens carry user_id, role, and the protocol version, expire after
// a caller-chosen TTL (15 minutes by default), and use the "JWT" typ header.
// Refresh tokens carry user_id only, always live for the configured refresh
// TTL (7 days by default), and use the "refresh" typ header. There is no
// revocation list: expiry is the only way a token stops being valid.
//
// Usage:
//
//	svc, err := jwt.NewService(jwt.Config{Secret: secret})
//	token, err := svc.IssueAccessToken("u1", "admin", 15*time.Minute)
//	userID, role, err := svc.Verify(token)
package jwt

import (
	"errors"
	"fmt"
	"io"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/kbukum/securekit/errors"
	"github.com/kbukum/securekit/random"
	"github.com/kbukum/securekit/validation"
)

// Service provides token issuance and verification.
// It is immutable after construction and safe for concurrent use.
type Service struct {
	cfg  Config
	now  func() time.Time
	rand io.Reader
}

// Option configures the service.
type Option func(*Service)

// WithClock sets the time source used for issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRandom sets the source of token identifiers (default: random.Reader).
func WithRandom(r io.Reader) Option {
	return func(s *Service) { s.rand = r }
}

// NewService creates a new JWT service.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if cfg.Secret == "" {
		return nil, apperrors.MissingConfig("jwt.secret")
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error()).WithCause(err)
	}
	s := &Service{cfg: cfg, now: time.Now, rand: random.Reader}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the effective configuration with the secret removed.
func (s *Service) Config() Config {
	cfg := s.cfg
	cfg.Secret = ""
	return cfg
}

// IssueAccessToken creates a signed access token valid for ttl.
func (s *Service) IssueAccessToken(userID, role string, ttl time.Duration) (string, error) {
	if appErr := validation.New().
		Required("user_id", userID).
		Required("role", role).
		Validate(); appErr != nil {
		return "", appErr
	}
	if ttl < time.Second {
		return "", apperrors.InvalidInput("ttl", "token lifetime must be at least one second")
	}

	claims, err := s.newClaims(userID, ttl)
	if err != nil {
		return "", err
	}
	claims.Role = role
	claims.ProtocolVersion = ProtocolVersion
	return s.sign(claims, TypeAccess)
}

// IssueDefaultAccessToken creates an access token with the configured default TTL.
func (s *Service) IssueDefaultAccessToken(userID, role string) (string, error) {
	return s.IssueAccessToken(userID, role, s.cfg.AccessTokenTTL)
}

// IssueRefreshToken creates a signed refresh token with the configured refresh TTL.
func (s *Service) IssueRefreshToken(userID string) (string, error) {
	if appErr := validation.New().Required("user_id", userID).Validate(); appErr != nil {
		return "", appErr
	}

	claims, err := s.newClaims(userID, s.cfg.RefreshTokenTTL)
	if err != nil {
		return "", err
	}
	claims.TokenType = TypeRefresh
	return s.sign(claims, TypeRefresh)
}

// Parse verifies a token and returns its claims.
// Checks run in order: structure, signature, issuer, expiry, issued-at,
// then presence of user_id.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.MalformedToken()
	}

	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, s.classify(err, claims)
	}
	if !token.Valid {
		return nil, apperrors.SignatureInvalid()
	}
	if typ, ok := token.Header["typ"].(string); ok {
		claims.Type = typ
	}
	if claims.UserID == "" {
		return nil, apperrors.MissingClaim("user_id")
	}
	return claims, nil
}

// Verify verifies a token and returns its user ID and role.
// Refresh tokens verify with an empty role.
func (s *Service) Verify(tokenString string) (userID, role string, err error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Role, nil
}

// VerifyRefreshToken verifies a token and requires it to be a refresh token.
func (s *Service) VerifyRefreshToken(tokenString string) (string, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	if !claims.IsRefresh() {
		return "", apperrors.InvalidToken("not a refresh token")
	}
	return claims.UserID, nil
}

func (s *Service) newClaims(userID string, ttl time.Duration) (*Claims, error) {
	jti, err := random.Identifier(s.rand)
	if err != nil {
		return nil, apperrors.CryptoFailure("generate token id", err)
	}
	now := s.now()
	return &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			ID:        jti,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}, nil
}

func (s *Service) sign(claims *Claims, typ string) (string, error) {
	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	token.Header["typ"] = typ
	signed, err := token.SignedString(s.cfg.key())
	if err != nil {
		return "", apperrors.CryptoFailure("sign token", err)
	}
	return signed, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if token.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return s.cfg.key(), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service) parserOptions() []gojwt.ParserOption {
	return []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithIssuer(s.cfg.Issuer),
		gojwt.WithIssuedAt(),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
		// Tokens are valid on the closed interval [iat, exp].
		gojwt.WithLeeway(time.Nanosecond),
	}
}

// classify maps golang-jwt failures onto the error taxonomy. The decoded
// claims are consulted for the issuer so that an issuer mismatch wins over
// expiry regardless of how the library joins its validation errors.
func (s *Service) classify(err error, claims *Claims) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return apperrors.MalformedToken().WithCause(err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid), errors.Is(err, gojwt.ErrTokenUnverifiable):
		return apperrors.SignatureInvalid().WithCause(err)
	case claims.Issuer != s.cfg.Issuer:
		return apperrors.IssuerMismatch(s.cfg.Issuer)
	case errors.Is(err, gojwt.ErrTokenExpired):
		return apperrors.TokenExpired()
	case errors.Is(err, gojwt.ErrTokenUsedBeforeIssued), errors.Is(err, gojwt.ErrTokenNotValidYet):
		return apperrors.TokenNotYetValid()
	case errors.Is(err, gojwt.ErrTokenRequiredClaimMissing):
		return apperrors.MissingClaim("exp").WithCause(err)
	default:
		return apperrors.InvalidToken(err.Error()).WithCause(err)
	}
}
