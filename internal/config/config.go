package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// engine state
	DataDir     string `toml:"data_dir"`
	TimeZone    string `toml:"time_zone"`
	CacheSizeMB int    `toml:"cache_size_mb"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(path, env string) (*Config, error) {
	var confs Toml
	if _, err := toml.DecodeFile(path, &confs); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return confs.Get(env)
}

// Default returns the config used when no config file is given:
// in-memory persistence, UTC calendar days, logs to stdout.
func Default() *Config {
	return &Config{
		TimeZone:    "UTC",
		CacheSizeMB: 8,
		LogLevel:    "trace",
		LogToStdout: true,
	}
}
