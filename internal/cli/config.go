package cli

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/padelmixer/padelmixer-admin/internal/session"
)

// EnvPrefix prefixes every environment variable the CLI reads
const EnvPrefix = "PADELMIXER_"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration. Flags override the environment.
type Config struct {
	ServerURL       string        `env:"SERVER" envDefault:"http://localhost:8080/api"`
	Backend         string        `env:"BACKEND" envDefault:"memory"`
	SessionFile     string        `env:"SESSION_FILE"`
	RedisURL        string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	JWTSecret       string        `env:"JWT_SECRET"`
	Timeout         time.Duration `env:"TIMEOUT" envDefault:"30s"`
	SimulateLatency bool          `env:"SIMULATE_LATENCY" envDefault:"true"`
	Output          string        `env:"OUTPUT" envDefault:"text"`
	Verbose         bool          `env:"VERBOSE"`
}

// LoadConfig reads the PADELMIXER_* environment
func LoadConfig() (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if c.SessionFile == "" {
		c.SessionFile = session.DefaultSessionFile()
	}
	return c, nil
}

// Validate checks the values flags may have overridden
func (c *Config) Validate() error {
	switch c.Output {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q: must be text or json", c.Output)
	}
	return nil
}
