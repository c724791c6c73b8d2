package main

import (
	"github.com/kbukum/securekit/config"
	"github.com/kbukum/securekit/observability"
	"github.com/kbukum/securekit/secure"
)

const serviceName = "securekit"

// appConfig is everything the CLI resolves from config.yml, .env files and
// the environment. JWT_SECRET, ENCRYPTION_KEY and DATABASE_URL land in the
// squashed secure.Config.
type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	secure.Config        `yaml:",inline" mapstructure:",squash"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Config.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

func (c *appConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	return c.Config.Validate()
}
