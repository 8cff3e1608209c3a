package llm_test

import (
	"testing"

	"github.com/hward/blogsmith/pkg/llm"
	"github.com/stretchr/testify/assert"
)

func TestNewWithConfig(t *testing.T) {
	engine, err := llm.NewWithConfig(llm.EngineConfig{
		Model:       "testmodel",
		Temperature: 0.5,
		MaxTokens:   1000,
		BaseURL:     "http://localhost:1234",
	})
	assert.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestNewWithConfig_Defaults(t *testing.T) {
	engine, err := llm.NewWithConfig(llm.EngineConfig{})
	assert.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestNewWithConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config llm.EngineConfig
	}{
		{"temperature too high", llm.EngineConfig{Temperature: 1.5}},
		{"negative temperature", llm.EngineConfig{Temperature: -0.1}},
		{"negative max tokens", llm.EngineConfig{MaxTokens: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := llm.NewWithConfig(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestNewEmbedderWithConfig(t *testing.T) {
	emb, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{})
	assert.NoError(t, err)
	assert.Equal(t, "nomic-embed-text:latest", emb.Config.Model)
	assert.Equal(t, "http://localhost:11434", emb.Config.BaseURL)
}

func TestFlattenEmbeddings(t *testing.T) {
	emb := llm.NewEmbedder()

	flat := emb.FlattenEmbeddings([][]float32{{1, 2}, {3}, {4, 5}})
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, flat)
}
