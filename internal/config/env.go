package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable the config reads, e.g.
// JMG_DIFFICULTY or JMG_SPAWNER_MAX_NPCS.
const EnvPrefix = "JMG_"

// ApplyEnv overrides fields from the process environment. Unset variables
// leave the file's values alone.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(nil)
}

// ApplyEnvFrom is ApplyEnv over an explicit environment. A nil map reads
// the process environment.
func (c *Config) ApplyEnvFrom(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
