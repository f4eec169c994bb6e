// Package config loads runtime configuration for the Prism vault.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional .env file loaded via godotenv, selected with -e or -env-file;
//     without the flag a ./.env next to the binary is tried best-effort.
//  3. PRISM_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory for the vault documents
//	-l string   minimum log level (debug, info, warn, error)
//
// Environment variables
//
//	PRISM_DATA_DIR        data directory
//	PRISM_LOG_LEVEL       minimum log level
//	PRISM_LOG_JSON        "true" to emit JSON log lines
//	PRISM_HISTORY_LIMIT   per-user cap on retained history entries
//	PRISM_AUTH_RATE       allowed login attempts per second per username
//	PRISM_AUTH_BURST      login attempt burst size
//
// Primary API
//
//   - type Config                   — holds all runtime settings
//   - func LoadConfig() *Config     — builds Config by applying all sources in order
//   - func (*Config) LoadDefaults() — sets sensible defaults
package config
