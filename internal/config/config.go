// Package config loads domainmap settings from domainmap.yaml and DOMAINMAP_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/reoring/domainmap"
	"github.com/reoring/domainmap/i18n"
)

// EnvPrefix is the prefix of environment overrides, e.g. DOMAINMAP_SERVER_ADDR.
const EnvPrefix = "DOMAINMAP"

// Config represents the domainmap configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Messages MessagesConfig `mapstructure:"messages"`
	Schema   SchemaConfig   `mapstructure:"schema"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MessagesConfig selects the language of validation messages
type MessagesConfig struct {
	Language string `mapstructure:"language"`
}

// SchemaConfig holds parsing behaviour shared by all registered classes
type SchemaConfig struct {
	UnknownKeys string `mapstructure:"unknown_keys"`
}

// Load reads the configuration. When path is empty, domainmap.yaml in the
// working directory is used if present; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("messages.language", "en")
	v.SetDefault("schema.unknown_keys", domainmap.UnknownStrip.String())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("domainmap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UnknownPolicy returns the configured unknown-key policy.
func (c *Config) UnknownPolicy() domainmap.UnknownPolicy {
	p, _ := domainmap.ParseUnknownPolicy(c.Schema.UnknownKeys)
	return p
}

// RegistryOptions returns the registry options implied by the configuration.
func (c *Config) RegistryOptions() []domainmap.Option {
	return []domainmap.Option{domainmap.WithUnknownPolicy(c.UnknownPolicy())}
}

// ApplyLanguage switches validation messages to the configured language.
func (c *Config) ApplyLanguage() {
	i18n.SetLanguage(c.Messages.Language)
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if _, ok := domainmap.ParseUnknownPolicy(cfg.Schema.UnknownKeys); !ok {
		return fmt.Errorf("schema.unknown_keys must be strip or strict, got: %s", cfg.Schema.UnknownKeys)
	}
	return nil
}
