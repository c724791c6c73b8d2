package secure

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/securekit/component"
	"github.com/kbukum/securekit/encryption"
	apperrors "github.com/kbukum/securekit/errors"
	"github.com/kbukum/securekit/random"
)

var (
	_ component.Component   = (*Context)(nil)
	_ component.Describable = (*Context)(nil)
)

// selfTestPlaintext is sealed and opened by Start.
const selfTestPlaintext = "securekit self-test"

// Name implements component.Component.
func (c *Context) Name() string { return "secure" }

// Start runs a cipher round trip and an entropy check before the context
// is reported healthy.
func (c *Context) Start(ctx context.Context) error {
	if err := random.Check(c.rand); err != nil {
		return apperrors.EntropyUnavailable(err)
	}
	envelope, err := c.cipher.Encrypt(selfTestPlaintext)
	if err != nil {
		return err
	}
	plaintext, err := c.cipher.Decrypt(envelope)
	if err != nil {
		return err
	}
	if plaintext != selfTestPlaintext {
		return apperrors.CryptoFailure("self-test", fmt.Errorf("round trip mismatch"))
	}
	c.started.Store(true)
	c.log.Debug("secure context started")
	return nil
}

// Stop implements component.Component. Secret material stays in place so
// in-flight callers are unaffected.
func (c *Context) Stop(ctx context.Context) error {
	c.started.Store(false)
	return nil
}

// Health reports unhealthy before Start and degraded while running on
// generated secrets.
func (c *Context) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case !c.started.Load():
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case len(c.generated) > 0:
		h.Status = component.StatusDegraded
		h.Message = "ephemeral secrets: " + strings.Join(c.generated, ", ")
	}
	return h
}

// Describe implements component.Describable. It reports algorithms and
// parameters only.
func (c *Context) Describe() component.Description {
	tokenCfg := c.tokens.Config()
	details := []string{
		c.cfg.Password.Describe(),
		fmt.Sprintf("AES-256-GCM iv=%d tag=%d", encryption.IVSize, encryption.TagSize),
		tokenCfg.Describe() + " iss=" + tokenCfg.Issuer,
	}
	if len(c.generated) > 0 {
		details = append(details, "generated: "+strings.Join(c.generated, ", "))
	}
	return component.Description{Name: "Secure Context", Type: "security", Details: details}
}
