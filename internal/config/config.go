// Package config loads the sphinxctl configuration from flags, environment
// and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by Load,
// e.g. SPHINXCTL_SEARCHD_DSN.
const EnvPrefix = "SPHINXCTL"

// Config is the sphinxctl configuration.
type Config struct {
	Searchd Searchd `mapstructure:"searchd"`
	Stats   Stats   `mapstructure:"stats"`
	Log     Log     `mapstructure:"log"`
}

// Searchd holds the daemon connection settings.
type Searchd struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Stats enables statement statistics and slow statement logging.
type Stats struct {
	Enabled       bool          `mapstructure:"enabled"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

// Log holds the logger settings.
type Log struct {
	Level    string `mapstructure:"level"`
	DebugSQL bool   `mapstructure:"debug_sql"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("searchd.dsn", "tcp(127.0.0.1:9306)/")
	v.SetDefault("searchd.max_open_conns", 4)
	v.SetDefault("searchd.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("stats.enabled", false)
	v.SetDefault("stats.slow_threshold", 100*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.debug_sql", false)
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the configuration file into v. An explicit file must
// exist; otherwise sphinxctl.yaml is looked up next to the executable and
// in the working directory, and a missing file is not an error.
func ReadFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", file, err)
		}
		return nil
	}
	if ex, err := os.Executable(); err == nil {
		v.AddConfigPath(filepath.Dir(ex))
	}
	v.AddConfigPath(".")
	v.SetConfigName("sphinxctl")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read: %w", err)
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error
	if c.Searchd.DSN == "" {
		errs = append(errs, errors.New("config: searchd.dsn is required"))
	}
	if c.Searchd.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("config: searchd.max_open_conns must not be negative, got %d", c.Searchd.MaxOpenConns))
	}
	if c.Stats.SlowThreshold < 0 {
		errs = append(errs, fmt.Errorf("config: stats.slow_threshold must not be negative, got %s", c.Stats.SlowThreshold))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured log level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}
