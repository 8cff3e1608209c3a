package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
)

// EngineConfig represents the configuration for a generation engine.
type EngineConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
	BaseURL     string // Ollama server URL
}

// Engine generates text through a hosted language model.
type Engine struct {
	config EngineConfig
	llm    llms.Model
}

// NewWithConfig creates a new Engine with the given configuration.
func NewWithConfig(config EngineConfig) (*Engine, error) {
	if config.Model == "" {
		config.Model = "mistral"
	}
	if config.Temperature < 0 || config.Temperature > 1 {
		return nil, fmt.Errorf("temperature must be between 0 and 1")
	}
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	} else if config.MaxTokens == 0 {
		config.MaxTokens = 2048
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}

	model, err := ollama.New(ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &Engine{
		config: config,
		llm:    model,
	}, nil
}

// Generate produces a completion for prompt under the given system
// instruction.
func (e *Engine) Generate(ctx context.Context, system, prompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	response, err := e.llm.GenerateContent(ctx, content,
		llms.WithTemperature(e.config.Temperature),
		llms.WithMaxTokens(e.config.MaxTokens))
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return response.Choices[0].Content, nil
}

// GenerateStream produces the completion as a channel of chunks.
func (e *Engine) GenerateStream(ctx context.Context, system, prompt string) (<-chan string, error) {
	content := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	resultChan := make(chan string)

	go func() {
		defer close(resultChan)

		response, err := e.llm.GenerateContent(ctx, content,
			llms.WithTemperature(e.config.Temperature),
			llms.WithMaxTokens(e.config.MaxTokens))
		if err != nil {
			resultChan <- fmt.Sprintf("Error: %v", err)
			return
		}

		if response == nil || len(response.Choices) == 0 {
			resultChan <- "Error: No response from LLM"
			return
		}

		for _, choice := range response.Choices {
			if choice != nil && choice.Content != "" {
				resultChan <- choice.Content
			}
		}
	}()

	return resultChan, nil
}
