// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Relevance RelevanceConfig `yaml:"relevance" mapstructure:"relevance"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Research  ResearchConfig  `yaml:"research" mapstructure:"research"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// GoogleConfig holds Custom Search API settings.
type GoogleConfig struct {
	Key               string  `yaml:"key" mapstructure:"key"`
	CX                string  `yaml:"cx" mapstructure:"cx"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	NumResults        int     `yaml:"num_results" mapstructure:"num_results"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// RelevanceConfig holds Relevance AI settings.
type RelevanceConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	ProjectID string `yaml:"project_id" mapstructure:"project_id"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ResearchConfig configures the source fan-out.
type ResearchConfig struct {
	SourceTimeoutSecs int      `yaml:"source_timeout_secs" mapstructure:"source_timeout_secs"`
	Priority          []string `yaml:"priority" mapstructure:"priority"`
}

// BatchConfig configures batch research.
type BatchConfig struct {
	MaxConcurrentCompanies int `yaml:"max_concurrent_companies" mapstructure:"max_concurrent_companies"`
}

// Load reads configuration from .env, config file, and environment.
func Load() (*Config, error) {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RESEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	// Credentials default empty so the env bindings are visible to Unmarshal.
	v.SetDefault("google.key", "")
	v.SetDefault("google.cx", "")
	v.SetDefault("relevance.token", "")
	v.SetDefault("relevance.project_id", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("google.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("google.num_results", 3)
	v.SetDefault("google.requests_per_second", 5.0)
	v.SetDefault("relevance.base_url", "https://api.relevance.ai/v1/project")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("research.source_timeout_secs", 30)
	v.SetDefault("research.priority", []string{"google", "relevance", "summarizer"})
	v.SetDefault("batch.max_concurrent_companies", 5)

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
