package analyzer_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hward/blogsmith/internal/models"
	"github.com/hward/blogsmith/pkg/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSearcher struct {
	results []models.SearchResult
	err     error
}

func (s *fixedSearcher) Search(ctx context.Context, query string, num int) ([]models.SearchResult, error) {
	return s.results, s.err
}

func newPageServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
}

func TestAnalyze(t *testing.T) {
	server := newPageServer(t, `
		<html>
			<head>
				<title>Best SEO Guide</title>
				<meta name="description" content="A complete guide.">
			</head>
			<body>
				<h1>SEO Guide</h1>
				<p>one two three four five</p>
			</body>
		</html>
	`)
	defer server.Close()

	searcher := &fixedSearcher{results: []models.SearchResult{
		{URL: server.URL, Rank: 1},
	}}

	var progressed []string
	a := analyzer.NewWithConfig(searcher, analyzer.AnalyzerConfig{
		RequestDelay: time.Millisecond,
		OnProgress: func(url string) {
			progressed = append(progressed, url)
		},
	})

	competitors, err := a.Analyze(context.Background(), "seo guide")
	require.NoError(t, err)
	require.Len(t, competitors, 1)

	c := competitors[0]
	assert.Equal(t, server.URL, c.URL)
	assert.Equal(t, "Best SEO Guide", c.Title)
	assert.Equal(t, "SEO Guide", c.H1)
	assert.Equal(t, "A complete guide.", c.MetaDescription)
	assert.Equal(t, 1, c.Rank)
	assert.Greater(t, c.WordCount, 5)
	assert.Equal(t, []string{server.URL}, progressed)
}

func TestAnalyze_Placeholders(t *testing.T) {
	server := newPageServer(t, `<html><body><p>bare page</p></body></html>`)
	defer server.Close()

	searcher := &fixedSearcher{results: []models.SearchResult{
		{URL: server.URL, Rank: 1},
	}}

	a := analyzer.NewWithConfig(searcher, analyzer.AnalyzerConfig{
		RequestDelay: time.Millisecond,
	})

	competitors, err := a.Analyze(context.Background(), "bare")
	require.NoError(t, err)
	require.Len(t, competitors, 1)

	assert.Equal(t, analyzer.NoTitle, competitors[0].Title)
	assert.Equal(t, analyzer.NoH1, competitors[0].H1)
	assert.Equal(t, analyzer.NoMetaDescription, competitors[0].MetaDescription)
}

func TestAnalyze_PartialFailure(t *testing.T) {
	good1 := newPageServer(t, `<html><head><title>First</title></head><body></body></html>`)
	defer good1.Close()
	good2 := newPageServer(t, `<html><head><title>Third</title></head><body></body></html>`)
	defer good2.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	searcher := &fixedSearcher{results: []models.SearchResult{
		{URL: good1.URL, Rank: 1},
		{URL: bad.URL, Rank: 2},
		{URL: good2.URL, Rank: 3},
	}}

	a := analyzer.NewWithConfig(searcher, analyzer.AnalyzerConfig{
		RequestDelay: time.Millisecond,
	})

	competitors, err := a.Analyze(context.Background(), "partial")
	require.NoError(t, err)
	require.Len(t, competitors, 2)

	// Rank order preserved with the failing entry omitted
	assert.Equal(t, "First", competitors[0].Title)
	assert.Equal(t, 1, competitors[0].Rank)
	assert.Equal(t, "Third", competitors[1].Title)
	assert.Equal(t, 3, competitors[1].Rank)
}

func TestAnalyze_SearchFailure(t *testing.T) {
	searcher := &fixedSearcher{err: errors.New("network down")}

	a := analyzer.NewWithConfig(searcher, analyzer.AnalyzerConfig{
		RequestDelay: time.Millisecond,
	})

	competitors, err := a.Analyze(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Empty(t, competitors)
}

func TestAnalyze_NoResults(t *testing.T) {
	a := analyzer.NewWithConfig(&fixedSearcher{}, analyzer.AnalyzerConfig{
		RequestDelay: time.Millisecond,
	})

	competitors, err := a.Analyze(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Empty(t, competitors)
}
