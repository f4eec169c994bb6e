package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.LogJSON)
	assert.Equal(t, 10000, c.HistoryLimit)
	assert.Equal(t, float64(5), c.AuthRate)
	assert.Equal(t, 10, c.AuthBurst)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")

	expected := &Config{}
	expected.LoadDefaults()
	assert.Empty(t, cmp.Diff(expected, cfg))
}

func TestParseEnv_OverlaysVariables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(envDataDir, "/tmp/prism-vault")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogJSON, "true")
	t.Setenv(envHistoryLimit, "500")
	t.Setenv(envAuthRate, "2.5")
	t.Setenv(envAuthBurst, "3")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "/tmp/prism-vault", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 500, cfg.HistoryLimit)
	assert.Equal(t, 2.5, cfg.AuthRate)
	assert.Equal(t, 3, cfg.AuthBurst)
}

func TestParseEnv_MalformedNumberPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(envHistoryLimit, "many")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseEnv(cfg) })
}

func TestParseEnv_EnvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := filepath.Join(dir, "prism.env")
	content := "PRISM_DATA_DIR=/from/file\nPRISM_AUTH_BURST=7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	os.Args = []string{"testbin", "-e", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "/from/file", cfg.DataDir)
	assert.Equal(t, 7, cfg.AuthBurst)

	t.Run("missing named file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-e", filepath.Join(dir, "absent.env")}

		cfg := &Config{}
		cfg.LoadDefaults()
		require.Panics(t, func() { parseEnv(cfg) })
	})
}

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-d", "/tmp/vault", "-l", "debug"}, expectPanic: false,
			expected: &Config{DataDir: "/tmp/vault", LogLevel: "debug"}},
		{name: "Test2 missing flag value", args: []string{"cmd", "-d"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
