package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hward/blogsmith/internal/models"
)

const defaultEndpoint = "https://www.googleapis.com/customsearch/v1"

type Config struct {
	APIKey   string
	CSEID    string
	Endpoint string
	Timeout  time.Duration
}

// Client queries the Google Custom Search JSON API. An unconfigured
// client (empty CSE ID) returns no results instead of failing, so the
// rest of the toolkit degrades gracefully without credentials.
type Client struct {
	config Config
	client *http.Client
}

func NewWithConfig(config Config) *Client {
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

type searchResponse struct {
	Items []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search returns up to num ranked results for query. Rank follows the
// order the API returned, starting at 1.
func (c *Client) Search(ctx context.Context, query string, num int) ([]models.SearchResult, error) {
	if c.config.CSEID == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("key", c.config.APIKey)
	params.Set("cx", c.config.CSEID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status code %d from search API", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]models.SearchResult, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		results = append(results, models.SearchResult{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
			Rank:    i + 1,
		})
	}

	return results, nil
}
