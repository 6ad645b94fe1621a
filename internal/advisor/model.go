package advisor

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/agentmesh/model"
	meshanthropic "github.com/hupe1980/agentmesh/model/anthropic"
	meshopenai "github.com/hupe1980/agentmesh/model/openai"
	openaisdk "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"

	"github.com/junhyuk/finadvisor/internal/config"
)

// newModel builds the language model shared by the advisor and all
// analysts from the configured provider.
func newModel(cfg config.AIConfig) (model.Model, error) {
	switch cfg.Provider {
	case "openai":
		clientOpts := []openaiopt.RequestOption{openaiopt.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			// Points the client at an OpenAI-compatible gateway.
			clientOpts = append(clientOpts, openaiopt.WithBaseURL(cfg.BaseURL))
		}
		client := openaisdk.NewClient(clientOpts...)

		return meshopenai.NewModelFromClient(&client, func(o *meshopenai.Options) {
			o.Model = cfg.Model
			o.Temperature = cfg.Temperature
			o.MaxCompletionTokens = cfg.MaxTokens
		}), nil

	case "anthropic":
		clientOpts := []anthropicopt.RequestOption{anthropicopt.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			clientOpts = append(clientOpts, anthropicopt.WithBaseURL(cfg.BaseURL))
		}
		client := anthropicsdk.NewClient(clientOpts...)

		return meshanthropic.NewModelFromClient(&client, func(o *meshanthropic.Options) {
			o.Model = anthropicsdk.Model(cfg.Model)
			o.Temperature = cfg.Temperature
			o.MaxTokens = cfg.MaxTokens
		}), nil

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
