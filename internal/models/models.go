package models

import "time"

// SearchResult is a single ranked hit returned by a search backend.
type SearchResult struct {
	URL     string
	Title   string
	Snippet string
	Rank    int
}

// Competitor holds the on-page SEO signals scraped from one search result.
type Competitor struct {
	URL             string
	Title           string
	H1              string
	MetaDescription string
	WordCount       int
	Rank            int
}

// ReadabilityReport carries the basic text-complexity metrics for a body
// of text. Averages are rounded to one decimal place.
type ReadabilityReport struct {
	WordCount         int
	SentenceCount     int
	AvgSentenceLength float64
	AvgWordLength     float64
	ReadingLevel      string
}

// Article is a generated blog post together with its generation inputs.
type Article struct {
	ID        string
	Topic     string
	Content   string
	Keywords  []string
	CreatedAt time.Time
	Metadata  map[string]interface{}
}

// PageSnapshot is a scraped competitor page as persisted by the store.
type PageSnapshot struct {
	ID        string
	URL       string
	Title     string
	Content   string
	WordCount int
	Metadata  map[string]interface{}
}
