package config

import (
	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	ServerURL    string `env:"STOREFRONT_SERVER_URL"`
	DatabasePath string `env:"STOREFRONT_DB_PATH"`
	LogLevel     string `env:"STOREFRONT_LOG_LEVEL"`
}

// parseEnv overlays cfg with the STOREFRONT_* variables that are set.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServerURL != "" {
		cfg.ServerURL = ec.ServerURL
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
