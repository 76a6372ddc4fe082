// Package config provides configuration loading and validation for the
// gitowners CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers  = errors.New("workers must be non-negative")
	ErrInvalidFormat   = errors.New("unknown output format")
	ErrInvalidLogLevel = errors.New("unknown log level")
)

// Default configuration values.
const (
	defaultFormat    = "tree"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// knownFormats mirrors the renderer formats; config validation rejects
// anything else before a repository is even opened.
var knownFormats = map[string]bool{
	"tree":  true,
	"table": true,
	"csv":   true,
	"json":  true,
	"yaml":  true,
	"html":  true,
}

// Config holds all configuration for a gitowners invocation.
type Config struct {
	// Workers bounds the blame worker pool; 0 means one per CPU.
	Workers int `mapstructure:"workers"`

	// Format is the default output format, overridable per run.
	Format string `mapstructure:"format"`

	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OTLP export settings; an empty endpoint disables
// export entirely.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	Environment  string  `mapstructure:"environment"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// Load reads configuration from an optional file and GITOWNERS_* environment
// variables, applying defaults first.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".gitowners")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix("GITOWNERS")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := viperCfg.ReadInConfig()
	if err != nil {
		// A missing config file is fine; anything else is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	err = viperCfg.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 0)
	v.SetDefault("format", defaultFormat)
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_insecure", false)
	v.SetDefault("telemetry.sample_ratio", 0.0)
}

// Validate checks invariants the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}

	if !knownFormats[c.Format] {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	_, err := c.SlogLevel()
	if err != nil {
		return err
	}

	return nil
}

// SlogLevel maps the configured level string onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
}

// LogJSON reports whether the JSON log handler was selected.
func (c *Config) LogJSON() bool {
	return strings.EqualFold(c.Logging.Format, "json")
}
