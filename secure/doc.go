// Package secure is the composition root of securekit's credential and
// secrets handling.
//
// A Context is built once per process from resolved configuration. It
// owns the JWT signing secret, the 32-byte encryption key, and the
// database locator, and exposes password hashing, authenticated
// encryption, and token issuance and verification over that material.
// Construction either succeeds completely or fails with a fatal AppError
// (MISSING_CONFIG, INVALID_KEY, ENTROPY_UNAVAILABLE); there is no degraded
// mode. Missing secrets are generated with a warning instead.
//
// Usage:
//
//	sc, err := secure.New(cfg, secure.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	stored, err := sc.HashPassword(pw)
//	token, err := sc.IssueAccessToken("u1", "admin", 0)
//	userID, role, err := sc.VerifyToken(token)
package secure
