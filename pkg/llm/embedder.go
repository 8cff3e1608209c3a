package llm

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"
)

// EmbedderConfig represents the configuration for an embedder.
type EmbedderConfig struct {
	Model   string
	BaseURL string // Ollama server URL
}

// Embedder creates vector embeddings for text through an Ollama
// embedding model.
type Embedder struct {
	Config EmbedderConfig
	Embed  *ollama.LLM
}

func NewEmbedderWithConfig(config EmbedderConfig) (Embedder, error) {
	if config.Model == "" {
		config.Model = "nomic-embed-text:latest"
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}

	emb, err := ollama.New(ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL))
	if err != nil {
		return Embedder{}, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	return Embedder{
		Config: config,
		Embed:  emb,
	}, nil
}

func NewEmbedder() Embedder {
	emb, _ := NewEmbedderWithConfig(EmbedderConfig{})
	return emb
}

func (e *Embedder) FlattenEmbeddings(embeddings [][]float32) []float32 {
	var flattened []float32
	for _, emb := range embeddings {
		flattened = append(flattened, emb...)
	}
	return flattened
}
