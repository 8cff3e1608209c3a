package types

import (
	"context"

	"github.com/hward/blogsmith/internal/models"
)

// Core interfaces

// Searcher is any search backend that can return ranked URLs for a
// query. The Google Custom Search client is the default implementation.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]models.SearchResult, error)
}

// SnapshotStore persists scraped competitor pages.
type SnapshotStore interface {
	Store(snaps []models.PageSnapshot) error
	Similar(text string, limit int) ([]models.PageSnapshot, error)
	Close()
}

// Generator produces text from a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
	GenerateStream(ctx context.Context, system, prompt string) (<-chan string, error)
}
