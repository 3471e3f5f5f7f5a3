// Package config loads lawbook settings through Viper.
//
// Precedence (lowest to highest): defaults < TOML file < LAWBOOK_* env vars.
// Command-line flags are applied on top by the CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/roach88/lawbook/internal/errors"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = "lawbook.toml"

// Config holds all lawbook settings.
type Config struct {
	DataDir  string    `mapstructure:"data_dir"`
	Database string    `mapstructure:"database"`
	Log      LogConfig `mapstructure:"log"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// DatabasePath returns the SQLite file location.
// An absolute Database is used as-is.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(c.DataDir, c.Database)
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "./data")
	v.SetDefault("database", "base.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// New returns a Viper instance with defaults and env binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LAWBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads configuration. If path is empty, DefaultFileName in the working
// directory is used when present; a missing default file is not an error.
func Load(path string) (*Config, error) {
	v := New()

	switch {
	case path != "":
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	default:
		if _, err := os.Stat(DefaultFileName); err == nil {
			v.SetConfigFile(DefaultFileName)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "read config file %s", DefaultFileName)
			}
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper unmarshals configuration from a prepared Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if cfg.Database == "" {
		return nil, errors.Wrap(errors.ErrInvalidRequest, "database file name is empty")
	}
	return &cfg, nil
}
