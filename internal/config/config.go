package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	General       GeneralConfig       `toml:"general"`
	Pricing       PricingConfig       `toml:"pricing"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type GeneralConfig struct {
	Interval int    `toml:"interval"` // refresh interval in seconds
	Timezone string `toml:"timezone"` // display timezone; aggregation stays UTC
	Language string `toml:"language"` // UI locale, currently only "en"
	LogPath  string `toml:"log_path"` // empty = ~/.codex/log/codex-tui.log
}

type NotificationsConfig struct {
	Bell bool `toml:"bell"` // ring the terminal bell on warnings
}

type PricingConfig struct {
	AutoFetch     bool   `toml:"auto_fetch"`
	Provider      string `toml:"provider"`
	CacheTTLHours int    `toml:"cache_ttl_hours"`
	CachedPricing bool   `toml:"cached_pricing"`
	ForcedModel   string `toml:"forced_model"`
	PricesPath    string `toml:"prices_path"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Interval: 10,
			Timezone: "UTC",
			Language: "en",
		},
		Pricing: PricingConfig{
			AutoFetch:     true,
			Provider:      "openai",
			CacheTTLHours: 24,
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "codex-smi", "config.toml")
}

// DefaultLogPath points at the Codex TUI log.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".codex", "log", "codex-tui.log")
	}
	return filepath.Join(home, ".codex", "log", "codex-tui.log")
}

// LogPath resolves the configured log path, falling back to the default.
func (c Config) LogPath() string {
	if c.General.LogPath != "" {
		return c.General.LogPath
	}
	return DefaultLogPath()
}

func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
