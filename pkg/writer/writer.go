package writer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hward/blogsmith/internal/models"
	"github.com/hward/blogsmith/internal/types"
)

const defaultSystemTemplate = "You are a professional content writer who produces well-structured, SEO-optimized articles in Markdown."

const defaultBlogTemplate = `Write a blog post about "%s".

Requirements:
- Around %d words
- Tone: %s
- Target audience: %s
- Naturally work in these keywords: %s
- Use Markdown headings and short paragraphs

%s`

const defaultSEOTemplate = `Review the following text for SEO. Target keywords: %s.

Suggest concrete improvements to keyword placement, headings, meta description and internal structure.

Text:
%s`

type WriterConfig struct {
	WordCount      int
	Tone           string
	Audience       string
	OutputDir      string
	SystemTemplate string
	BlogTemplate   string
	SEOTemplate    string
}

// Writer turns a topic into a full article through a generation engine
// and saves the result as timestamped markdown.
type Writer struct {
	config WriterConfig
	engine types.Generator
}

// ArticleRequest carries the generation inputs for one article.
type ArticleRequest struct {
	Topic             string
	Keywords          []string
	CompetitorSummary string
}

func NewWithConfig(engine types.Generator, config WriterConfig) *Writer {
	if config.WordCount == 0 {
		config.WordCount = 1000
	}
	if config.Tone == "" {
		config.Tone = "Professional"
	}
	if config.Audience == "" {
		config.Audience = "General"
	}
	if config.OutputDir == "" {
		config.OutputDir = "outputs"
	}
	if config.SystemTemplate == "" {
		config.SystemTemplate = defaultSystemTemplate
	}
	if config.BlogTemplate == "" {
		config.BlogTemplate = defaultBlogTemplate
	}
	if config.SEOTemplate == "" {
		config.SEOTemplate = defaultSEOTemplate
	}

	return &Writer{
		config: config,
		engine: engine,
	}
}

// GenerateArticle produces a blog post for the request.
func (w *Writer) GenerateArticle(ctx context.Context, req ArticleRequest) (models.Article, error) {
	if req.Topic == "" {
		return models.Article{}, fmt.Errorf("topic is required")
	}

	content, err := w.engine.Generate(ctx, w.config.SystemTemplate, w.BuildBlogPrompt(req))
	if err != nil {
		return models.Article{}, fmt.Errorf("failed to generate article: %w", err)
	}

	return models.Article{
		ID:        uuid.NewString(),
		Topic:     req.Topic,
		Content:   content,
		Keywords:  req.Keywords,
		CreatedAt: time.Now(),
		Metadata: map[string]interface{}{
			"tone":     w.config.Tone,
			"audience": w.config.Audience,
		},
	}, nil
}

// GenerateArticleStream is the streaming variant of GenerateArticle.
func (w *Writer) GenerateArticleStream(ctx context.Context, req ArticleRequest) (<-chan string, error) {
	if req.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	return w.engine.GenerateStream(ctx, w.config.SystemTemplate, w.BuildBlogPrompt(req))
}

// RecommendSEO asks the engine for SEO improvement suggestions on text.
func (w *Writer) RecommendSEO(ctx context.Context, text string, keywords []string) (string, error) {
	prompt := fmt.Sprintf(w.config.SEOTemplate, strings.Join(keywords, ", "), text)
	return w.engine.Generate(ctx, w.config.SystemTemplate, prompt)
}

// BuildBlogPrompt renders the generation prompt for a request.
func (w *Writer) BuildBlogPrompt(req ArticleRequest) string {
	var competitorSection string
	if req.CompetitorSummary != "" {
		competitorSection = fmt.Sprintf("Competitor analysis of top-ranking pages:\n%s", req.CompetitorSummary)
	}

	return fmt.Sprintf(w.config.BlogTemplate,
		req.Topic,
		w.config.WordCount,
		w.config.Tone,
		w.config.Audience,
		strings.Join(req.Keywords, ", "),
		competitorSection,
	)
}

// Save writes content under the output directory as
// <prefix>_<timestamp>.md and returns the file path.
func (w *Writer) Save(content, prefix string) (string, error) {
	if prefix == "" {
		prefix = "blog"
	}

	if err := os.MkdirAll(w.config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.md", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(w.config.OutputDir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	return path, nil
}
