package analyzer

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hward/blogsmith/internal/models"
	"github.com/hward/blogsmith/internal/types"
	"golang.org/x/time/rate"
)

// Placeholder values substituted when a page lacks the element.
const (
	NoTitle           = "No title"
	NoH1              = "No H1"
	NoMetaDescription = "No meta description"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// FetchError reports a failed page download.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a page that downloaded but could not be parsed.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type AnalyzerConfig struct {
	NumCompetitors int
	FetchTimeout   time.Duration
	RequestDelay   time.Duration // politeness delay between page fetches
	UserAgent      string
	OnProgress     func(url string)
	Store          types.SnapshotStore // optional, nil disables persistence
}

// Analyzer fetches the top search results for a query and extracts
// on-page SEO signals from each. Fetches run sequentially with a fixed
// delay between requests; per-page failures are logged and skipped so a
// single bad page never aborts the batch.
type Analyzer struct {
	config   AnalyzerConfig
	searcher types.Searcher
	client   *http.Client
	limiter  *rate.Limiter
}

func NewWithConfig(searcher types.Searcher, config AnalyzerConfig) *Analyzer {
	if config.NumCompetitors == 0 {
		config.NumCompetitors = 3
	}
	if config.FetchTimeout == 0 {
		config.FetchTimeout = 10 * time.Second
	}
	if config.RequestDelay == 0 {
		config.RequestDelay = 2 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}

	return &Analyzer{
		config:   config,
		searcher: searcher,
		client: &http.Client{
			Timeout: config.FetchTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(config.RequestDelay), 1),
	}
}

// Analyze queries the search backend and scrapes each result page.
// Records come back in search-rank order minus any skipped entries. An
// unconfigured or unreachable search backend yields an empty result,
// never an error.
func (a *Analyzer) Analyze(ctx context.Context, query string) ([]models.Competitor, error) {
	results, err := a.searcher.Search(ctx, query, a.config.NumCompetitors)
	if err != nil {
		log.Printf("Search failed for %q: %v", query, err)
		return nil, nil
	}

	var competitors []models.Competitor
	var snapshots []models.PageSnapshot

	for _, result := range results {
		if err := a.limiter.Wait(ctx); err != nil {
			return competitors, err
		}

		if a.config.OnProgress != nil {
			a.config.OnProgress(result.URL)
		}

		doc, err := a.fetchPage(ctx, result.URL)
		if err != nil {
			log.Printf("Skipping competitor: %v", err)
			continue
		}

		competitor := extractSignals(doc)
		competitor.URL = result.URL
		competitor.Rank = result.Rank
		competitors = append(competitors, competitor)

		if a.config.Store != nil {
			snapshots = append(snapshots, models.PageSnapshot{
				ID:        fmt.Sprintf("%s_%d", query, result.Rank),
				URL:       result.URL,
				Title:     competitor.Title,
				Content:   pageText(doc),
				WordCount: competitor.WordCount,
				Metadata: map[string]interface{}{
					"query": query,
					"time":  time.Now(),
				},
			})
		}
	}

	if a.config.Store != nil && len(snapshots) > 0 {
		if err := a.config.Store.Store(snapshots); err != nil {
			log.Printf("Failed to store page snapshots: %v", err)
		}
	}

	return competitors, nil
}

func (a *Analyzer) fetchPage(ctx context.Context, urlStr string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: err}
	}
	req.Header.Set("User-Agent", a.config.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("received status code %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &ParseError{URL: urlStr, Err: err}
	}

	return doc, nil
}

// extractSignals pulls the title, first h1, meta description and
// whole-page word count out of a parsed page, substituting placeholder
// strings for anything missing.
func extractSignals(doc *goquery.Document) models.Competitor {
	competitor := models.Competitor{
		Title:           NoTitle,
		H1:              NoH1,
		MetaDescription: NoMetaDescription,
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		competitor.Title = title
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		competitor.H1 = h1
	}

	if desc, exists := doc.Find(`meta[name="description"]`).First().Attr("content"); exists && desc != "" {
		competitor.MetaDescription = desc
	}

	competitor.WordCount = len(strings.Fields(pageText(doc)))

	return competitor
}

func pageText(doc *goquery.Document) string {
	return strings.Join(strings.Fields(doc.Text()), " ")
}
