// Package config loads runtime configuration for the storefront client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones.
//
// Supported flags
//
//	-s string   base URL of the storefront backend
//	-d string   path of the local SQLite database
//	-l string   log level: debug, info, warn, error
//
// Environment
//
//	STOREFRONT_SERVER_URL, STOREFRONT_DB_PATH, STOREFRONT_LOG_LEVEL
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "db_path": "storefront.db",
//	  "log_level": "info"
//	}
//
// Malformed input in any source panics; configuration runs once at start-up.
package config
