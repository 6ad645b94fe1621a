package config

import (
	"fmt"
	"strings"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks that the configuration is complete enough to run a research
// session: a model provider key and a Firecrawl key must be present.
func (v *Validator) Validate(cfg *Config) error {
	if err := v.ValidateProvider(cfg.AI.Provider); err != nil {
		return err
	}
	if err := v.ValidateAPIKey(cfg.AI.APIKey, cfg.AI.Provider); err != nil {
		return err
	}
	if err := v.ValidateModel(cfg.AI.Model); err != nil {
		return err
	}
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("firecrawl API key cannot be empty (set FIRECRAWL_API_KEY)")
	}
	return nil
}

// ValidateProvider validates the model provider name
func (v *Validator) ValidateProvider(provider string) error {
	switch provider {
	case "openai", "anthropic":
		return nil
	default:
		return fmt.Errorf("unknown provider %q (expected openai or anthropic)", provider)
	}
}

// ValidateAPIKey validates an API key format
func (v *Validator) ValidateAPIKey(key string, provider string) error {
	if key == "" {
		return fmt.Errorf("%s API key cannot be empty", provider)
	}

	switch provider {
	case "anthropic":
		if !strings.HasPrefix(key, "sk-ant-") {
			return fmt.Errorf("invalid Anthropic API key format (should start with sk-ant-)")
		}
	case "openai":
		if !strings.HasPrefix(key, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format (should start with sk-)")
		}
	}

	return nil
}

// ValidateModel validates a model name
func (v *Validator) ValidateModel(model string) error {
	if model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	return nil
}

// ValidateLogLevel validates a log level
func (v *Validator) ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn, or error)", level)
	}
}
