// Package llm wraps the text-generation providers behind one small client
// interface with per-tier model selection.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier selects how capable (and how slow) a model should be.
type ModelTier string

const (
	// TierLite is for short rewrites: a summary, one project line, a few bullets.
	TierLite ModelTier = "lite"
	// TierStandard is for full documents: cover letters, LinkedIn summaries, ATS reports.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for generating a whole resume from a profile.
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM backend.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// ParseProvider maps a config value onto a Provider. Empty means Gemini.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	}
	return "", fmt.Errorf("unknown LLM provider %q", s)
}

// Config holds the model selection for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature applies to free-text generation. JSON output always uses
	// JSONTemperature.
	Temperature float32
	// BaseURL overrides the provider endpoint (OpenAI-compatible gateways).
	BaseURL string
}

// JSONTemperature keeps structured output stable.
const JSONTemperature float32 = 0.1

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini models.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-1.5-flash-8b",
			TierStandard: "gemini-1.5-flash",
			TierAdvanced: "gemini-1.5-pro",
		},
		Temperature: 0.7,
	}
}

// DefaultOpenAIConfig returns the default OpenAI models.
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
		Temperature: 0.7,
	}
}

// ConfigFor returns the default configuration for p.
func ConfigFor(p Provider) *Config {
	if p == ProviderOpenAI {
		return DefaultOpenAIConfig()
	}
	return DefaultGeminiConfig()
}

// GetModel returns the model name for a tier, falling back to the standard
// and then the lite model.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model set for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	cp := *c
	cp.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		cp.Models[k] = v
	}
	cp.Models[tier] = model
	return &cp
}
