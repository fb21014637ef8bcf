// Package config provides configuration management for the user directory service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the service.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr" validate:"required"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" yaml:"log_level" validate:"required,oneof=debug info warn error"`

	// CookieKey signs the session cookie. Process configuration, never user input.
	CookieKey string `mapstructure:"cookie_key" yaml:"cookie_key" validate:"required,min=16"`

	// SessionTTL is the fixed time-to-live of a session, counted from creation.
	SessionTTL time.Duration `mapstructure:"session_ttl" yaml:"session_ttl" validate:"required,gt=0"`

	// SessionSweepInterval is how often expired sessions are swept.
	SessionSweepInterval time.Duration `mapstructure:"session_sweep_interval" yaml:"session_sweep_interval" validate:"required,gt=0"`

	// FilterMinLen and FilterMaxLen bound the filter field name length.
	FilterMinLen int `mapstructure:"filter_min_len" yaml:"filter_min_len" validate:"required,gt=0"`
	FilterMaxLen int `mapstructure:"filter_max_len" yaml:"filter_max_len" validate:"required,gtefield=FilterMinLen"`

	// SeedFixture loads the canonical demo users at startup.
	SeedFixture bool `mapstructure:"seed_fixture" yaml:"seed_fixture"`

	// SeedFake adds this many generated users on top of the fixture.
	SeedFake int `mapstructure:"seed_fake" yaml:"seed_fake" validate:"gte=0"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		ListenAddr:           ":3000",
		LogLevel:             "info",
		CookieKey:            "change-me-in-production!",
		SessionTTL:           time.Hour,
		SessionSweepInterval: time.Minute,
		FilterMinLen:         3,
		FilterMaxLen:         20,
		SeedFixture:          true,
		SeedFake:             0,
	}
}

// Load reads configuration from an optional YAML file and USERDIR_* environment
// variables, layered over the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("cookie_key", def.CookieKey)
	v.SetDefault("session_ttl", def.SessionTTL)
	v.SetDefault("session_sweep_interval", def.SessionSweepInterval)
	v.SetDefault("filter_min_len", def.FilterMinLen)
	v.SetDefault("filter_max_len", def.FilterMaxLen)
	v.SetDefault("seed_fixture", def.SeedFixture)
	v.SetDefault("seed_fake", def.SeedFake)

	v.SetEnvPrefix("USERDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
