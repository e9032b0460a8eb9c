// Package config loads runtime settings from the environment and an optional
// config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// Config holds every setting the CLI and server read. Keys are environment
// variable names; a config file uses the same keys.
type Config struct {
	// LLM
	LLMProvider   string        `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey  string        `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey  string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `mapstructure:"OPENAI_BASE_URL"`
	LLMTimeout    time.Duration `mapstructure:"LLM_TIMEOUT"`
	RedisURL      string        `mapstructure:"REDIS_URL"`
	CacheTTL      time.Duration `mapstructure:"LLM_CACHE_TTL"`

	// Storage
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	// Server
	Port               int     `mapstructure:"PORT"`
	CORSAllowedOrigins string  `mapstructure:"CORS_ALLOWED_ORIGINS"`
	MaxBodyBytes       int64   `mapstructure:"MAX_BODY_BYTES"`
	RateLimitEnabled   bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS       float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst     int     `mapstructure:"RATE_LIMIT_BURST"`

	// Rendering
	DefaultTemplate string `mapstructure:"DEFAULT_TEMPLATE"`
	ChromePath      string `mapstructure:"CHROME_PATH"`

	// Logging
	LogFormat string `mapstructure:"LOG_FORMAT"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"LLM_PROVIDER":         string(llm.ProviderGemini),
	"GEMINI_API_KEY":       "",
	"OPENAI_API_KEY":       "",
	"OPENAI_BASE_URL":      "",
	"LLM_TIMEOUT":          "90s",
	"REDIS_URL":            "",
	"LLM_CACHE_TTL":        llm.DefaultCacheTTL.String(),
	"DATABASE_URL":         "",
	"SQLITE_PATH":          "",
	"PORT":                 8080,
	"CORS_ALLOWED_ORIGINS": "*",
	"MAX_BODY_BYTES":       1 << 20,
	"RATE_LIMIT_ENABLED":   true,
	"RATE_LIMIT_RPS":       5.0,
	"RATE_LIMIT_BURST":     10,
	"DEFAULT_TEMPLATE":     rendering.DefaultTemplateName,
	"CHROME_PATH":          "",
	"LOG_FORMAT":           "text",
	"LOG_LEVEL":            "info",
}

// LoadConfig reads defaults, then the file at path (if any), then the
// environment; later sources win. The file type follows its extension
// (.json, .yaml, .toml, .env).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	if _, err := llm.ParseProvider(c.LLMProvider); err != nil {
		return fmt.Errorf("config error: 'LLM_PROVIDER': %v", err)
	}
	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'DATABASE_URL' and 'SQLITE_PATH' are mutually exclusive")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'PORT' must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config error: 'MAX_BODY_BYTES' must be positive")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: rate limits must be non-negative")
	}
	if c.LLMTimeout < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}
	if _, err := rendering.LookupTemplate(c.DefaultTemplate); err != nil {
		return fmt.Errorf("config error: 'DEFAULT_TEMPLATE': %v", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config error: 'LOG_FORMAT' must be text or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: 'LOG_LEVEL' must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// Provider returns the configured LLM provider. Call Validate first.
func (c *Config) Provider() llm.Provider {
	p, _ := llm.ParseProvider(c.LLMProvider)
	return p
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.Provider() == llm.ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// LLMEnabled reports whether an API key is available for the provider.
func (c *Config) LLMEnabled() bool {
	return c.APIKey() != ""
}

// LLMConfig returns the model configuration for the provider.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(c.Provider())
	if cfg.Provider == llm.ProviderOpenAI {
		cfg.BaseURL = c.OpenAIBaseURL
	}
	return cfg
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
