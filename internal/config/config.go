// Package config handles configuration loading for hknewsdesk.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration. It is built
// once at startup and passed explicitly into the aggregator and adapters;
// there is no global credential state.
type Config struct {
	Keys    KeysConfig    `mapstructure:"keys"    yaml:"keys"`
	News    NewsConfig    `mapstructure:"news"    yaml:"news"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// KeysConfig holds upstream API credentials. An empty key silently disables
// the corresponding adapter; no network call is attempted for it.
type KeysConfig struct {
	Finnhub      string `mapstructure:"finnhub"       yaml:"finnhub"`
	NewsAPI      string `mapstructure:"newsapi"       yaml:"newsapi"`
	AlphaVantage string `mapstructure:"alphavantage"  yaml:"alphavantage"`
}

// NewsConfig holds pipeline tuning knobs.
type NewsConfig struct {
	CacheTTL         int `mapstructure:"cache_ttl"          yaml:"cache_ttl"`          // seconds, ticker news
	HeadlineCacheTTL int `mapstructure:"headline_cache_ttl" yaml:"headline_cache_ttl"` // seconds, market headlines
	MaxArticles      int `mapstructure:"max_articles"       yaml:"max_articles"`
	MaxHeadlines     int `mapstructure:"max_headlines"      yaml:"max_headlines"`
	LookbackDays     int `mapstructure:"lookback_days"      yaml:"lookback_days"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.hknewsdesk/config.yaml (home directory)
//  3. /etc/hknewsdesk/config.yaml (system)
//
// Environment variables override config file values with the prefix
// HKNEWSDESK_, e.g. HKNEWSDESK_API_PORT. Upstream credentials additionally
// honor their providers' conventional variable names (FINNHUB_API_KEY,
// NEWSAPI_KEY, ALPHAVANTAGE_KEY).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".hknewsdesk"))
	v.AddConfigPath("/etc/hknewsdesk")

	v.SetEnvPrefix("HKNEWSDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not required to exist: defaults + env vars suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("HKNEWSDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// News pipeline defaults
	v.SetDefault("news.cache_ttl", 1800)         // 30 minutes
	v.SetDefault("news.headline_cache_ttl", 900) // 15 minutes
	v.SetDefault("news.max_articles", 50)
	v.SetDefault("news.max_headlines", 30)
	v.SetDefault("news.lookback_days", 7)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// overrideFromEnv reads credentials from the providers' conventional
// environment variable names, which take precedence over the config file.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		cfg.Keys.Finnhub = key
	}
	if key := os.Getenv("NEWSAPI_KEY"); key != "" {
		cfg.Keys.NewsAPI = key
	}
	if key := os.Getenv("ALPHAVANTAGE_KEY"); key != "" {
		cfg.Keys.AlphaVantage = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
