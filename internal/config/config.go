package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Asset is one entry of the analyzable instrument catalog.
type Asset struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Emoji  string `yaml:"emoji"`
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		AdminID  string `yaml:"admin_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		Interval   string `yaml:"interval"`
		OutputSize int    `yaml:"output_size"`
	} `yaml:"data_source"`
	Strategy struct {
		BuyThreshold int `yaml:"buy_threshold"`
	} `yaml:"strategy"`
	Ledger struct {
		UsersFile string `yaml:"users_file"`
	} `yaml:"ledger"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
		ExpiryCron string `yaml:"expiry_cron"`
	} `yaml:"schedule"`
	Assets []Asset `yaml:"assets"`
	Proxy  string  `yaml:"proxy"`
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("ADMIN_USER_ID"); v != "" {
		cfg.Telegram.AdminID = v
	}
	if v := os.Getenv("TWELVE_DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("TWELVE_DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("USERS_FILE"); v != "" {
		cfg.Ledger.UsersFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		cfg.Schedule.DigestCron = v
	}
	if v := os.Getenv("BUY_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Strategy.BuyThreshold = n
		}
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://api.twelvedata.com"
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "15min"
	}
	if cfg.DataSource.OutputSize == 0 {
		cfg.DataSource.OutputSize = 100
	}
	if cfg.Strategy.BuyThreshold == 0 {
		cfg.Strategy.BuyThreshold = 60
	}
	if cfg.Ledger.UsersFile == "" {
		cfg.Ledger.UsersFile = "data/users.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trading_bot.db"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 8 * * 1-5"
	}
	if cfg.Schedule.ExpiryCron == "" {
		cfg.Schedule.ExpiryCron = "0 0 9 * * *"
	}
	if len(cfg.Assets) == 0 {
		cfg.Assets = DefaultAssets()
	}

	return cfg, nil
}

// DefaultAssets returns the built-in instrument catalog.
func DefaultAssets() []Asset {
	return []Asset{
		{Name: "Gold", Symbol: "XAU/USD", Emoji: "🪙"},
		{Name: "Silver", Symbol: "XAG/USD", Emoji: "⚪"},
		{Name: "Oil", Symbol: "USOIL", Emoji: "🛢️"},
		{Name: "EUR/USD", Symbol: "EUR/USD", Emoji: "💶"},
		{Name: "GBP/USD", Symbol: "GBP/USD", Emoji: "💷"},
		{Name: "USD/JPY", Symbol: "USD/JPY", Emoji: "💴"},
		{Name: "Bitcoin", Symbol: "BTC/USD", Emoji: "₿"},
		{Name: "Ethereum", Symbol: "ETH/USD", Emoji: "🔷"},
	}
}

// FindAsset resolves a user-supplied name or symbol against the catalog.
func (c *Config) FindAsset(query string) (Asset, bool) {
	for _, a := range c.Assets {
		if a.Name == query || a.Symbol == query {
			return a, true
		}
	}
	return Asset{}, false
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.AdminID == "" {
		return fmt.Errorf("telegram.admin_id is required")
	}
	if c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required")
	}
	if c.Strategy.BuyThreshold < 0 || c.Strategy.BuyThreshold > 100 {
		return fmt.Errorf("strategy.buy_threshold must be in [0,100]")
	}
	return nil
}
