package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the API process needs at startup. Values come
// from an optional YAML file and are overridden by environment
// variables, so containerised deployments need no file at all.
type Config struct {
	ListenAddr      string `yaml:"listen_addr"`
	DataDir         string `yaml:"data_dir"`
	DatabaseURL     string `yaml:"database_url"`
	RedisURL        string `yaml:"redis_url"`
	LogLevel        string `yaml:"log_level"`
	DefaultTimezone string `yaml:"default_timezone"`
}

// Load reads the config file at path (skipped when empty or missing)
// and applies environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:      ":8080",
		DataDir:         "data",
		LogLevel:        "info",
		DefaultTimezone: "Australia/Melbourne",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// optional file
		case err != nil:
			return Config{}, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	override(&cfg.ListenAddr, "LISTEN_ADDR")
	override(&cfg.DataDir, "DATA_DIR")
	override(&cfg.DatabaseURL, "DATABASE_URL")
	override(&cfg.RedisURL, "REDIS_URL")
	override(&cfg.LogLevel, "LOG_LEVEL")
	override(&cfg.DefaultTimezone, "DEFAULT_TIMEZONE")
	return cfg, nil
}

func override(target *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*target = v
	}
}
