package config

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Search config
	if c.Search.CSEID != "" && c.Search.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "search.api_key",
			Message: "api_key is required when cse_id is set",
		})
	}

	if c.Search.Endpoint != "" && !strings.HasPrefix(c.Search.Endpoint, "http") {
		errors = append(errors, ValidationError{
			Field:   "search.endpoint",
			Message: "endpoint must be an http(s) URL",
		})
	}

	if c.Search.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "search.timeout",
			Message: "timeout cannot be negative",
		})
	}

	// Validate Analyzer config
	if c.Analyzer.NumCompetitors < 1 {
		errors = append(errors, ValidationError{
			Field:   "analyzer.num_competitors",
			Message: "num_competitors must be positive",
		})
	}

	if c.Analyzer.FetchTimeout < 1 {
		errors = append(errors, ValidationError{
			Field:   "analyzer.fetch_timeout",
			Message: "fetch_timeout must be positive",
		})
	}

	if c.Analyzer.RequestDelay < 0 {
		errors = append(errors, ValidationError{
			Field:   "analyzer.request_delay",
			Message: "request_delay cannot be negative",
		})
	}

	// Validate SEO config
	if c.SEO.TopKeywords < 1 {
		errors = append(errors, ValidationError{
			Field:   "seo.top_keywords",
			Message: "top_keywords must be positive",
		})
	}

	// Validate LLM config
	if c.LLM.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "Ollama base URL is required",
		})
	}

	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > 4096 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Message: "max_tokens must be between 1 and 4096",
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if _, err := url.Parse(c.LLM.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "invalid Ollama base URL",
		})
	}

	// Validate Writer config
	if c.Writer.WordCount < 1 {
		errors = append(errors, ValidationError{
			Field:   "writer.word_count",
			Message: "word_count must be positive",
		})
	}

	// Validate Database config
	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	return errors
}
