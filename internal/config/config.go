package config

// Config holds runtime settings for the Prism vault.
//
// Fields:
//   - DataDir: directory holding the JSON documents (users, passwords, history, sessions).
//   - LogLevel: minimum log level (debug, info, warn, error).
//   - LogJSON: emit JSON log lines instead of text.
//   - HistoryLimit: per-user cap on retained history entries.
//   - AuthRate: allowed login attempts per second per username.
//   - AuthBurst: login attempt burst size.
type Config struct {
	DataDir      string
	LogLevel     string
	LogJSON      bool
	HistoryLimit int
	AuthRate     float64
	AuthBurst    int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.LogLevel = "info"
	c.LogJSON = false
	c.HistoryLimit = 10000
	c.AuthRate = 5
	c.AuthBurst = 10
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// an optional .env file, PRISM_* environment variables, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
