package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Search struct {
		APIKey   string `yaml:"api_key"`
		CSEID    string `yaml:"cse_id"`
		Endpoint string `yaml:"endpoint"`
		Timeout  int    `yaml:"timeout"` // seconds
	} `yaml:"search"`

	Analyzer struct {
		NumCompetitors int    `yaml:"num_competitors"`
		FetchTimeout   int    `yaml:"fetch_timeout"` // seconds
		RequestDelay   int    `yaml:"request_delay"` // seconds between fetches
		UserAgent      string `yaml:"user_agent"`
	} `yaml:"analyzer"`

	SEO struct {
		TopKeywords     int      `yaml:"top_keywords"`
		CustomStopwords []string `yaml:"custom_stopwords"`
	} `yaml:"seo"`

	LLM struct {
		BaseURL     string  `yaml:"base_url"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"llm"`

	Writer struct {
		WordCount int    `yaml:"word_count"`
		Tone      string `yaml:"tone"`
		Audience  string `yaml:"audience"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"writer"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
		VectorDim int    `yaml:"vector_dim"`
		BatchSize int    `yaml:"batch_size"`
	} `yaml:"database"`

	UI struct {
		Streaming bool   `yaml:"streaming"`
		Theme     string `yaml:"theme"`
	} `yaml:"ui"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/blogsmith/config.yaml"),
			"/etc/blogsmith/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	applyDefaults(config)
	mergeWithEnv(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Search.Endpoint == "" {
		config.Search.Endpoint = "https://www.googleapis.com/customsearch/v1"
	}
	if config.Search.Timeout == 0 {
		config.Search.Timeout = 10
	}

	if config.Analyzer.NumCompetitors == 0 {
		config.Analyzer.NumCompetitors = 3
	}
	if config.Analyzer.FetchTimeout == 0 {
		config.Analyzer.FetchTimeout = 10
	}
	if config.Analyzer.RequestDelay == 0 {
		config.Analyzer.RequestDelay = 2
	}

	if config.SEO.TopKeywords == 0 {
		config.SEO.TopKeywords = 10
	}

	if config.LLM.Model == "" {
		config.LLM.Model = "mistral"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 2048
	}
	if config.LLM.Temperature == 0 {
		config.LLM.Temperature = 0.7
	}
	if config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}

	if config.Writer.WordCount == 0 {
		config.Writer.WordCount = 1000
	}
	if config.Writer.Tone == "" {
		config.Writer.Tone = "Professional"
	}
	if config.Writer.Audience == "" {
		config.Writer.Audience = "General"
	}
	if config.Writer.OutputDir == "" {
		config.Writer.OutputDir = "outputs"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "page_snapshots"
	}
	if config.Database.VectorDim == 0 {
		config.Database.VectorDim = 768
	}
	if config.Database.BatchSize == 0 {
		config.Database.BatchSize = 100
	}

	if config.UI.Theme == "" {
		config.UI.Theme = "default"
	}
}

func mergeWithEnv(config *Config) {
	if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" {
		config.Search.APIKey = apiKey
	}
	if cseID := os.Getenv("GOOGLE_CSE_ID"); cseID != "" {
		config.Search.CSEID = cseID
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
}
