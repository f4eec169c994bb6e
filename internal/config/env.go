package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Hamish-Leahy/Prism-sub005/internal/flagx"
)

// Environment variables understood by parseEnv.
const (
	envDataDir      = "PRISM_DATA_DIR"
	envLogLevel     = "PRISM_LOG_LEVEL"
	envLogJSON      = "PRISM_LOG_JSON"
	envHistoryLimit = "PRISM_HISTORY_LIMIT"
	envAuthRate     = "PRISM_AUTH_RATE"
	envAuthBurst    = "PRISM_AUTH_BURST"
)

// parseEnv overlays Config with values from the environment.
//
// An optional .env file is loaded into the process environment first. Its
// path comes from the -e or -env-file flag; without the flag a ./.env is
// tried and silently skipped when absent. Existing process variables are
// never overwritten by the file.
//
// Behavior:
//   - Empty or unset variables leave the Config field unchanged.
//   - Panics on an explicitly named .env file that cannot be read, and on
//     malformed numeric or boolean values (caller should recover if desired).
func parseEnv(cfg *Config) {
	if envFile := flagx.EnvFileFlag(); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv(envDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envLogJSON); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.LogJSON = b
	}
	if v := os.Getenv(envHistoryLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.HistoryLimit = n
	}
	if v := os.Getenv(envAuthRate); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.AuthRate = f
	}
	if v := os.Getenv(envAuthBurst); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.AuthBurst = n
	}
}
