package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `pair:
  base_asset: BTC
  quote_asset: USDT
accounts:
  - name: main
    api_key: k1
    secret_key: s1
  - name: spare
    api_key: k2
    secret_key: s2
collection_interval_seconds: 60
refresh_interval_seconds: 10
database:
  sqlite_path: /tmp/history.db
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "BTCUSDT", cfg.TradingPair().Symbol())
	assert.Equal(t, 60*time.Second, cfg.CollectionInterval())
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval())
	assert.Equal(t, "/tmp/history.db", cfg.Database.SQLitePath)

	accounts := cfg.AccountList()
	require.Len(t, accounts, 2)
	assert.Equal(t, "main", accounts[0].Name)
	assert.Equal(t, "k1", accounts[0].APIKey)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "USDCUSDT", cfg.TradingPair().Symbol())
	assert.Equal(t, 300, cfg.CollectionIntervalSeconds)
	assert.Equal(t, 30, cfg.RefreshIntervalSeconds)
	assert.Equal(t, "data/balance_history.db", cfg.Database.SQLitePath)

	// No accounts configured: loading succeeds, validation refuses.
	assert.Error(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SQLITE_PATH", "/tmp/override.db")
	t.Setenv("COLLECTION_INTERVAL_SECONDS", "120")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "15")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.db", cfg.Database.SQLitePath)
	assert.Equal(t, 120, cfg.CollectionIntervalSeconds)
	assert.Equal(t, 15, cfg.RefreshIntervalSeconds)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no accounts", func(c *Config) { c.Accounts = nil }},
		{"unnamed account", func(c *Config) { c.Accounts[0].Name = "" }},
		{"duplicate names", func(c *Config) { c.Accounts[1].Name = c.Accounts[0].Name }},
		{"same assets", func(c *Config) { c.Pair.QuoteAsset = c.Pair.BaseAsset }},
		{"negative interval", func(c *Config) { c.CollectionIntervalSeconds = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, sampleYAML))
			require.NoError(t, err)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
