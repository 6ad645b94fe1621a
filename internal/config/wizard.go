package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// WizardOptions configures the wizard input source.
type WizardOptions struct {
	Reader io.Reader
}

// Wizard provides an interactive configuration wizard
type Wizard struct {
	reader *bufio.Reader
}

// NewWizard creates a new configuration wizard
func NewWizard(optFns ...func(o *WizardOptions)) *Wizard {
	opts := WizardOptions{Reader: os.Stdin}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Wizard{
		reader: bufio.NewReader(opts.Reader),
	}
}

// Run runs the interactive configuration wizard
func (w *Wizard) Run() (*Config, error) {
	fmt.Println("=== FinAdvisor Configuration Wizard ===")
	fmt.Println()

	cfg := DefaultConfig()
	validator := NewValidator()

	// Model provider
	for {
		fmt.Print("Model provider (openai/anthropic) [openai]: ")
		provider, err := w.readLine()
		if err != nil {
			return nil, err
		}

		if provider == "" {
			provider = "openai"
		}

		if err := validator.ValidateProvider(provider); err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		cfg.AI.Provider = provider
		break
	}

	if cfg.AI.Provider == "anthropic" {
		cfg.AI.Model = "claude-sonnet-4-0"
	}

	// Provider API key
	for {
		fmt.Printf("API key for %s: ", cfg.AI.Provider)
		key, err := w.readLine()
		if err != nil {
			return nil, err
		}

		if err := validator.ValidateAPIKey(key, cfg.AI.Provider); err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		cfg.AI.APIKey = key
		break
	}

	// Firecrawl API key
	for {
		fmt.Print("Firecrawl API key: ")
		key, err := w.readLine()
		if err != nil {
			return nil, err
		}

		if key == "" {
			fmt.Println("Error: Firecrawl API key is required for web search")
			continue
		}

		cfg.Search.APIKey = key
		break
	}

	fmt.Println()

	// Model
	fmt.Printf("Model name [%s]: ", cfg.AI.Model)
	model, err := w.readLine()
	if err != nil {
		return nil, err
	}

	if model != "" {
		cfg.AI.Model = model
	}

	// Log Level
	fmt.Print("Log level (debug/info/warn/error) [info]: ")
	level, err := w.readLine()
	if err != nil {
		return nil, err
	}

	if level != "" {
		if err := validator.ValidateLogLevel(level); err != nil {
			fmt.Printf("Warning: %v, using default (info)\n", err)
		} else {
			cfg.Logging.Level = level
		}
	}

	// Report output directory
	fmt.Printf("Report output directory [%s]: ", cfg.Output.Dir)
	dir, err := w.readLine()
	if err != nil {
		return nil, err
	}

	if dir != "" {
		cfg.Output.Dir = dir
	}

	fmt.Println()
	fmt.Println("Configuration complete!")

	return cfg, nil
}

func (w *Wizard) readLine() (string, error) {
	line, err := w.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
