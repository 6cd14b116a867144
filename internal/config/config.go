// Package config manages configuration for the sqsrelay Lambda, local server and CLI.
// It uses Viper for unified configuration management from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sqsrelay/sqsrelay/internal/constants"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the runtime configuration of the forwarder.
// URL and Token are read verbatim and never validated: an empty URL surfaces as a
// failed forward at invocation time, exactly like any other upstream error.
type Config struct {
	// Forwarding
	URL                  string        `mapstructure:"url"`
	Token                string        `mapstructure:"token"`
	TokenParameter       string        `mapstructure:"token_parameter"`
	Timeout              time.Duration `mapstructure:"timeout" validate:"gte=0"`
	FailOnUpstreamStatus bool          `mapstructure:"fail_on_upstream_status"`

	// HTTPEnabled serves the router on Function URL requests. Off by default:
	// the routes accept unauthenticated callers and forward with the stored token.
	HTTPEnabled bool `mapstructure:"http_enabled"`

	// Runtime
	Environment    constants.Environment `mapstructure:"env" validate:"oneof=production development cli"`
	InitTimeout    time.Duration         `mapstructure:"init_timeout" validate:"gt=0"`
	LogLevel       string                `mapstructure:"log_level"`
	Port           int                   `mapstructure:"port" validate:"gte=0,lte=65535"`
	AllowedOrigins []string              `mapstructure:"allowed_origins"`
}

var validate = validator.New()

// Load loads the configuration from environment variables.
// URL and TOKEN are read unprefixed; every other setting uses the SQSRELAY_ prefix.
// Only explicitly bound variables are read, so SQSRELAY_URL and SQSRELAY_TOKEN are ignored.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Environment = normalizeEnvironment(cfg.Environment)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration and exits on error.
// Suitable for application startup where configuration errors should be fatal.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// GetLogLevel returns the slog.Level from the string configuration.
// Defaults to INFO if the level string is invalid.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// UsesParameterStore reports whether the token must be fetched from SSM Parameter Store.
func (c *Config) UsesParameterStore() bool {
	return c.Token == "" && c.TokenParameter != ""
}

// Helper functions

func setDefaults(v *viper.Viper) {
	v.SetDefault("url", "")
	v.SetDefault("token", "")
	v.SetDefault("token_parameter", "")
	v.SetDefault("timeout", constants.DefaultUpstreamTimeout.String())
	v.SetDefault("fail_on_upstream_status", false)
	v.SetDefault("http_enabled", false)
	v.SetDefault("env", string(constants.Production))
	v.SetDefault("init_timeout", constants.DefaultInitTimeout.String())
	v.SetDefault("log_level", "INFO")
	v.SetDefault("port", constants.DefaultLocalPort)
	v.SetDefault("allowed_origins", []string{"*"})
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("url", constants.URLEnvVar)
	_ = v.BindEnv("token", constants.TokenEnvVar)

	envVars := []string{
		"ALLOWED_ORIGINS",
		"ENV",
		"FAIL_ON_UPSTREAM_STATUS",
		"HTTP_ENABLED",
		"INIT_TIMEOUT",
		"LOG_LEVEL",
		"PORT",
		"TIMEOUT",
		"TOKEN_PARAMETER",
	}

	for _, envVar := range envVars {
		// Convert to lowercase to match mapstructure tags (keep underscores)
		_ = v.BindEnv(strings.ToLower(envVar), constants.EnvPrefix+"_"+envVar)
	}
}

// normalizeEnvironment trims whitespace and lowercases the environment identifier.
func normalizeEnvironment(env constants.Environment) constants.Environment {
	normalized := strings.TrimSpace(string(env))
	if normalized == "" {
		return constants.Production
	}
	return constants.Environment(strings.ToLower(normalized))
}
