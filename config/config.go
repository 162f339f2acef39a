// SPDX-License-Identifier: MIT

// Package config loads timewarp settings for the CLI and the HTTP service.
//
// Sources, lowest priority first: built-in defaults, an optional YAML file,
// then TIMEWARP_* environment variables (TIMEWARP_SERVER_ADDR overrides
// server.addr).
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/katalvlaran/timewarp/dtw"
)

// Sentinel validation errors.
var (
	ErrInvalidBand      = errors.New("align band must be >= -1")
	ErrInvalidWorkers   = errors.New("align workers must be positive")
	ErrInvalidMaxLength = errors.New("server max length must be positive")
	ErrInvalidMaxBody   = errors.New("server max body must be a positive size")
	ErrInvalidMaxCells  = errors.New("server max cells must be positive")
	ErrInvalidLogLevel  = errors.New("unknown log level")
	ErrInvalidLogFormat = errors.New("unknown log format")
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "TIMEWARP"

// Default configuration values.
const (
	DefaultBand            = -1
	DefaultWorkers         = 4
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultMaxBody         = "1MB"
	DefaultMaxLength       = 10000
	DefaultMaxCells        = 4_000_000
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCleanupInterval = time.Minute
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds all timewarp configuration.
type Config struct {
	Align   AlignConfig   `mapstructure:"align"`
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AlignConfig holds defaults for the align command.
type AlignConfig struct {
	// Band is the Sakoe-Chiba radius; -1 means unrestricted.
	Band       int  `mapstructure:"band"`
	ShowMatrix bool `mapstructure:"show_matrix"`
	Color      bool `mapstructure:"color"`
	Workers    int  `mapstructure:"workers"`
}

// ServerConfig holds HTTP service configuration.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBody      string        `mapstructure:"max_body"`
	MaxLength    int           `mapstructure:"max_length"`
	// MaxCells caps the admissible cost-matrix cells of one request
	// (16 bytes each for float64 costs).
	MaxCells int `mapstructure:"max_cells"`
}

// CacheConfig holds result-cache configuration.
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Enabled         bool          `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Align: AlignConfig{
			Band:    DefaultBand,
			Color:   true,
			Workers: DefaultWorkers,
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			MaxBody:      DefaultMaxBody,
			MaxLength:    DefaultMaxLength,
			MaxCells:     DefaultMaxCells,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             DefaultCacheTTL,
			CleanupInterval: DefaultCleanupInterval,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads configuration from configPath (if non-empty) and the
// environment. Without an explicit path it looks for timewarp.yaml in the
// working directory and $HOME/.config/timewarp; a missing file is not an
// error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("timewarp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/timewarp")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults mirrors Default() into v so that env-only keys are known.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("align.band", d.Align.Band)
	v.SetDefault("align.show_matrix", d.Align.ShowMatrix)
	v.SetDefault("align.color", d.Align.Color)
	v.SetDefault("align.workers", d.Align.Workers)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_body", d.Server.MaxBody)
	v.SetDefault("server.max_length", d.Server.MaxLength)
	v.SetDefault("server.max_cells", d.Server.MaxCells)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if c.Align.Band < -1 {
		return fmt.Errorf("%w: %d", ErrInvalidBand, c.Align.Band)
	}
	if c.Align.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Align.Workers)
	}
	if c.Server.MaxLength <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxLength, c.Server.MaxLength)
	}
	if c.Server.MaxCells <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxCells, c.Server.MaxCells)
	}
	if _, err := c.Server.MaxBodyBytes(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// Restriction maps Band to a dtw.Restriction: -1 is Unrestricted.
func (a AlignConfig) Restriction() dtw.Restriction {
	if a.Band < 0 {
		return dtw.Unrestricted()
	}

	return dtw.Band(a.Band)
}

// MaxBodyBytes parses MaxBody ("1MB", "512KiB", "2048") into bytes.
func (s ServerConfig) MaxBodyBytes() (int64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s.MaxBody))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMaxBody, s.MaxBody, err)
	}
	if n == 0 || n > 1<<40 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxBody, s.MaxBody)
	}

	return int64(n), nil
}

// ParseLevel maps debug, info, warn or error (any case) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
}

// NewLogger builds a slog.Logger writing to w in the configured format.
// Invalid settings fall back to info-level text output.
func NewLogger(cfg LoggingConfig, w io.Writer) *slog.Logger {
	level, _ := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h)
}
