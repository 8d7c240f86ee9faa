// Package config loads application configuration from file and
// environment and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Browser    BrowserConfig    `yaml:"browser" mapstructure:"browser"`
	BizSearch  BizSearchConfig  `yaml:"biz_search" mapstructure:"biz_search"`
	KeywordVol KeywordVolConfig `yaml:"keyword_vol" mapstructure:"keyword_vol"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Analyze    AnalyzeConfig    `yaml:"analyze" mapstructure:"analyze"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// BrowserConfig configures the headless document client.
type BrowserConfig struct {
	ChromePath  string  `yaml:"chrome_path" mapstructure:"chrome_path"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// BizSearchConfig holds local search API credentials.
type BizSearchConfig struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
}

// KeywordVolConfig holds the optional keyword-volume service settings.
// An empty key disables the service; volumes degrade to "unknown".
type KeywordVolConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// CacheConfig bounds the in-process caches.
type CacheConfig struct {
	DocCapacity   int `yaml:"doc_capacity" mapstructure:"doc_capacity"`
	DocTTLMinutes int `yaml:"doc_ttl_minutes" mapstructure:"doc_ttl_minutes"`
	VolTTLHours   int `yaml:"vol_ttl_hours" mapstructure:"vol_ttl_hours"`
	VolCapacity   int `yaml:"vol_capacity" mapstructure:"vol_capacity"`
}

// AnalyzeConfig tunes the extraction pipeline.
type AnalyzeConfig struct {
	StrategyTimeoutSecs int      `yaml:"strategy_timeout_secs" mapstructure:"strategy_timeout_secs"`
	ExtraChromeTokens   []string `yaml:"extra_chrome_tokens" mapstructure:"extra_chrome_tokens"`
	MaxCompetitorFetch  int      `yaml:"max_competitor_fetch" mapstructure:"max_competitor_fetch"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PLACEAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("browser.timeout_secs", 25)
	v.SetDefault("browser.rate_per_sec", 1)
	v.SetDefault("biz_search.base_url", "https://openapi.naver.com/v1/search")
	v.SetDefault("cache.doc_capacity", 500)
	v.SetDefault("cache.doc_ttl_minutes", 30)
	v.SetDefault("cache.vol_ttl_hours", 12)
	v.SetDefault("cache.vol_capacity", 5000)
	v.SetDefault("analyze.strategy_timeout_secs", 10)
	v.SetDefault("analyze.max_competitor_fetch", 3)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
