package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
search:
  api_key: "file-key"
  cse_id: "file-cx"
  timeout: 5

analyzer:
  num_competitors: 5
  fetch_timeout: 15
  request_delay: 1

seo:
  top_keywords: 7
  custom_stopwords:
    - "blog"

llm:
  base_url: "http://localhost:11434"
  model: "llama3"
  max_tokens: 1000
  temperature: 0.5

writer:
  word_count: 1500
  tone: "Casual"

database:
  url: "postgres://localhost:5432/test"
  table_name: "test_snapshots"

ui:
  streaming: false
  theme: "dark"
`
	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	// Verify loaded values
	assert.Equal(t, "file-cx", config.Search.CSEID)
	assert.Equal(t, 5, config.Search.Timeout)
	assert.Equal(t, 5, config.Analyzer.NumCompetitors)
	assert.Equal(t, 15, config.Analyzer.FetchTimeout)
	assert.Equal(t, 7, config.SEO.TopKeywords)
	assert.Equal(t, []string{"blog"}, config.SEO.CustomStopwords)
	assert.Equal(t, "llama3", config.LLM.Model)
	assert.Equal(t, 0.5, config.LLM.Temperature)
	assert.Equal(t, 1500, config.Writer.WordCount)
	assert.Equal(t, "Casual", config.Writer.Tone)
	assert.Equal(t, "test_snapshots", config.Database.TableName)
	assert.False(t, config.UI.Streaming)

	// Defaults filled in for unset values
	assert.Equal(t, "https://www.googleapis.com/customsearch/v1", config.Search.Endpoint)
	assert.Equal(t, "outputs", config.Writer.OutputDir)
	assert.Equal(t, 768, config.Database.VectorDim)
}

func TestConfigValidation(t *testing.T) {
	validConfig := func() *Config {
		c := &Config{}
		applyDefaults(c)
		return c
	}

	tests := []struct {
		name          string
		mutate        func(*Config)
		expectedErrs  int
		errorMessages []string
	}{
		{
			name:         "valid config",
			mutate:       func(c *Config) {},
			expectedErrs: 0,
		},
		{
			name: "cse id without api key",
			mutate: func(c *Config) {
				c.Search.CSEID = "some-cx"
			},
			expectedErrs:  1,
			errorMessages: []string{"search.api_key: api_key is required when cse_id is set"},
		},
		{
			name: "invalid llm settings",
			mutate: func(c *Config) {
				c.LLM.MaxTokens = 5000
				c.LLM.Temperature = 3.0
			},
			expectedErrs: 2,
			errorMessages: []string{
				"llm.max_tokens: max_tokens must be between 1 and 4096",
				"llm.temperature: temperature must be between 0 and 2",
			},
		},
		{
			name: "invalid analyzer settings",
			mutate: func(c *Config) {
				c.Analyzer.NumCompetitors = 0
				c.Analyzer.RequestDelay = -1
			},
			expectedErrs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)

			errors := config.Validate()
			assert.Len(t, errors, tt.expectedErrs)

			for i, msg := range tt.errorMessages {
				assert.Contains(t, errors[i].Error(), msg)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	os.Setenv("GOOGLE_API_KEY", "env-key")
	os.Setenv("GOOGLE_CSE_ID", "env-cx")
	os.Setenv("OLLAMA_BASE_URL", "http://env-ollama:11434")
	os.Setenv("DATABASE_URL", "postgres://env-db:5432/test")
	defer func() {
		os.Unsetenv("GOOGLE_API_KEY")
		os.Unsetenv("GOOGLE_CSE_ID")
		os.Unsetenv("OLLAMA_BASE_URL")
		os.Unsetenv("DATABASE_URL")
	}()

	config := &Config{}
	mergeWithEnv(config)

	assert.Equal(t, "env-key", config.Search.APIKey)
	assert.Equal(t, "env-cx", config.Search.CSEID)
	assert.Equal(t, "http://env-ollama:11434", config.LLM.BaseURL)
	assert.Equal(t, "postgres://env-db:5432/test", config.Database.URL)
}
