package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds the runtime settings of the menu server.
type Config struct {
	// Port is the HTTP port.
	Port int `env:"TREEMENU_PORT" envDefault:"8080"`

	// DSN is the SQLite data source name.
	DSN string `env:"TREEMENU_DB" envDefault:":memory:"`

	// SiteFile is the YAML file with routes and menus, seeded into the database when set.
	SiteFile string `env:"TREEMENU_SITE"`

	// MenuName is the menu drawn on every page.
	MenuName string `env:"TREEMENU_MENU" envDefault:"main"`

	// LogLevel is the log level name.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads the configuration from vars, or the process environment when vars is nil.
func LoadFrom(vars map[string]string) (*Config, error) {
	var c Config

	opts := env.Options{}
	if vars != nil {
		opts.Environment = vars
	}

	if err := env.Parse(&c, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MenuName == "" {
		return fmt.Errorf("menu name is required")
	}

	return nil
}
