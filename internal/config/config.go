package config

// Config represents the main finadvisor configuration
type Config struct {
	// AI model provider settings
	AI AIConfig `json:"ai" mapstructure:"ai"`

	// Web search (Firecrawl) settings
	Search SearchConfig `json:"search" mapstructure:"search"`

	// Market data (Yahoo Finance) settings
	Market MarketConfig `json:"market" mapstructure:"market"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Report output
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Metrics exposure
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// AIConfig holds model provider configuration
type AIConfig struct {
	Provider    string  `json:"provider" mapstructure:"provider"` // openai, anthropic
	Model       string  `json:"model" mapstructure:"model"`
	Temperature float64 `json:"temperature" mapstructure:"temperature"`
	MaxTokens   int64   `json:"max_tokens" mapstructure:"max_tokens"`
	// BaseURL points the OpenAI client at an OpenAI-compatible gateway when set.
	BaseURL string `json:"base_url" mapstructure:"base_url"`
	APIKey  string `json:"api_key" mapstructure:"api_key"`
}

// SearchConfig holds Firecrawl search configuration
type SearchConfig struct {
	APIKey   string `json:"api_key" mapstructure:"api_key"`
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	Limit    int    `json:"limit" mapstructure:"limit"`
	TimeoutS int    `json:"timeout_s" mapstructure:"timeout_s"`
}

// MarketConfig holds Yahoo Finance client configuration
type MarketConfig struct {
	Endpoint  string `json:"endpoint" mapstructure:"endpoint"`
	UserAgent string `json:"user_agent" mapstructure:"user_agent"`
	TimeoutS  int    `json:"timeout_s" mapstructure:"timeout_s"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	File   string `json:"file" mapstructure:"file"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// OutputConfig holds report output configuration
type OutputConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// MetricsConfig holds Prometheus exposure configuration
type MetricsConfig struct {
	Addr string `json:"addr" mapstructure:"addr"` // empty disables the listener
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Search: SearchConfig{
			Endpoint: "https://api.firecrawl.dev/v1/search",
			Limit:    5,
			TimeoutS: 60,
		},
		Market: MarketConfig{
			Endpoint:  "https://query1.finance.yahoo.com",
			UserAgent: "finadvisor/0.1",
			TimeoutS:  30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
		Output: OutputConfig{
			Dir: "reports",
		},
	}
}
