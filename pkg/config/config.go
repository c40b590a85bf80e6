package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	// BasePath prefixes every crawler route.
	BasePath string `mapstructure:"BASE_PATH"`

	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	AWSSessionToken    string `mapstructure:"AWS_SESSION_TOKEN"`
	AWSRegion          string `mapstructure:"AWS_REGION"`
	// GlueEndpoint overrides the Glue endpoint, e.g. for a local emulator.
	GlueEndpoint string `mapstructure:"GLUE_ENDPOINT"`

	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// Load reads configuration from an optional env file and the environment.
// Environment variables win over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// The file is optional: in production everything comes from the environment.
	_ = v.ReadInConfig()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BASE_PATH", "/crawler")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_SESSION_TOKEN", "")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("GLUE_ENDPOINT", "")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.BasePath = normalizeBasePath(cfg.BasePath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.AWSRegion == "" {
		errs = append(errs, errors.New("AWS_REGION is required"))
	}
	if c.AWSAccessKeyID == "" || c.AWSSecretAccessKey == "" {
		errs = append(errs, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required"))
	}
	if c.ServerPort == "" {
		errs = append(errs, errors.New("SERVER_PORT must not be empty"))
	}
	return errors.Join(errs...)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// normalizeBasePath returns "" for the root, otherwise "/segment" without a trailing slash.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
