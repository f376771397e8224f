package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/paulo-zhang/AccountMonitor/internal/model"
)

// AccountConfig holds one account's identity and venue credentials.
type AccountConfig struct {
	Name      string `yaml:"name"`
	APIKey    string `yaml:"api_key"`
	SecretKey string `yaml:"secret_key"`
}

// Config holds all application configuration.
type Config struct {
	Pair struct {
		BaseAsset  string `yaml:"base_asset"`
		QuoteAsset string `yaml:"quote_asset"`
	} `yaml:"pair"`
	Accounts                  []AccountConfig `yaml:"accounts"`
	CollectionIntervalSeconds int             `yaml:"collection_interval_seconds"`
	RefreshIntervalSeconds    int             `yaml:"refresh_interval_seconds"`
	Database                  struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("COLLECTION_INTERVAL_SECONDS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.CollectionIntervalSeconds = n
		}
	}
	if v := os.Getenv("REFRESH_INTERVAL_SECONDS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.RefreshIntervalSeconds = n
		}
	}

	// Defaults
	if cfg.Pair.BaseAsset == "" {
		cfg.Pair.BaseAsset = "USDC"
	}
	if cfg.Pair.QuoteAsset == "" {
		cfg.Pair.QuoteAsset = "USDT"
	}
	if cfg.CollectionIntervalSeconds == 0 {
		cfg.CollectionIntervalSeconds = 300
	}
	if cfg.RefreshIntervalSeconds == 0 {
		cfg.RefreshIntervalSeconds = 30
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/balance_history.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Pair.BaseAsset == "" || c.Pair.QuoteAsset == "" {
		return fmt.Errorf("pair.base_asset and pair.quote_asset are required")
	}
	if c.Pair.BaseAsset == c.Pair.QuoteAsset {
		return fmt.Errorf("pair assets must differ")
	}
	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}
	seen := make(map[string]bool)
	for i, a := range c.Accounts {
		if a.Name == "" {
			return fmt.Errorf("accounts[%d].name is required", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate account name %q", a.Name)
		}
		seen[a.Name] = true
	}
	if c.CollectionIntervalSeconds <= 0 {
		return fmt.Errorf("collection_interval_seconds must be positive")
	}
	if c.RefreshIntervalSeconds <= 0 {
		return fmt.Errorf("refresh_interval_seconds must be positive")
	}
	return nil
}

// TradingPair returns the configured pair as a model type.
func (c *Config) TradingPair() model.TradingPair {
	return model.TradingPair{BaseAsset: c.Pair.BaseAsset, QuoteAsset: c.Pair.QuoteAsset}
}

// AccountList returns the configured accounts as model types.
func (c *Config) AccountList() []model.Account {
	out := make([]model.Account, len(c.Accounts))
	for i, a := range c.Accounts {
		out[i] = model.Account{Name: a.Name, APIKey: a.APIKey, SecretKey: a.SecretKey}
	}
	return out
}

// CollectionInterval returns the sampling cadence.
func (c *Config) CollectionInterval() time.Duration {
	return time.Duration(c.CollectionIntervalSeconds) * time.Second
}

// RefreshInterval returns the snapshot publisher cadence.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}
