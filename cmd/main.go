package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hward/blogsmith/internal/models"
	"github.com/hward/blogsmith/internal/types"
	"github.com/hward/blogsmith/pkg/analyzer"
	"github.com/hward/blogsmith/pkg/llm"
	"github.com/hward/blogsmith/pkg/search"
	"github.com/hward/blogsmith/pkg/seo"
	"github.com/hward/blogsmith/pkg/store"
	"github.com/hward/blogsmith/pkg/writer"
)

func main() {
	config := parseFlags()

	if err := run(config); err != nil {
		log.Fatal(err)
	}
}

func run(config Config) error {
	ctx := context.Background()

	if config.Topic == "" && config.Query == "" && config.TextFile == "" {
		return fmt.Errorf("nothing to do: pass -topic, -query or -file")
	}

	var snapshots types.SnapshotStore
	if config.DBUrl != "" {
		embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
			BaseURL: config.BaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize embedder: %v", err)
		}

		snapshots, err = store.NewWithConfig(store.SnapshotStoreConfig{
			ConnString: config.DBUrl,
			TableName:  config.TableName,
			VectorDim:  config.VectorDim,
			BatchSize:  config.BatchSize,
		}, embedder)
		if err != nil {
			return fmt.Errorf("failed to initialize snapshot store: %v", err)
		}
		defer snapshots.Close()
	}

	summary := ""
	if config.Query != "" {
		competitors := analyzeCompetitors(ctx, config, snapshots)
		if len(competitors) == 0 {
			color.Yellow("No competitor data found. Check the search query and credentials.")
		} else {
			printCompetitorTable(competitors)

			// Common keywords across competitor titles and headings
			var allText []string
			for _, c := range competitors {
				allText = append(allText, c.Title, c.H1)
			}
			common := seo.ExtractKeywords(strings.Join(allText, " "), config.TopKeywords, config.Stopwords...)
			if len(common) > 5 {
				common = common[:5]
			}
			if len(common) > 0 {
				color.Cyan("\nCommon keywords in top results: %s", strings.Join(common, ", "))
			}

			summary = competitorSummary(competitors)
		}
	}

	if config.Topic != "" {
		return generateArticle(ctx, config, summary)
	}

	if config.TextFile != "" {
		return analyzeText(ctx, config)
	}

	return nil
}

func analyzeCompetitors(ctx context.Context, config Config, snapshots types.SnapshotStore) []models.Competitor {
	searcher := search.NewWithConfig(search.Config{
		APIKey:   config.APIKey,
		CSEID:    config.CSEID,
		Endpoint: config.Endpoint,
		Timeout:  time.Duration(config.SearchTimeout) * time.Second,
	})

	bar := getProgressBar(config.NumCompetitors, " Analyzing competitors...")
	a := analyzer.NewWithConfig(searcher, analyzer.AnalyzerConfig{
		NumCompetitors: config.NumCompetitors,
		FetchTimeout:   time.Duration(config.FetchTimeout) * time.Second,
		RequestDelay:   time.Duration(config.RequestDelay) * time.Second,
		UserAgent:      config.UserAgent,
		Store:          snapshots,
		OnProgress: func(url string) {
			bar.Add(1)
		},
	})

	color.Cyan("Analyzing top results for %q...", config.Query)
	competitors, err := a.Analyze(ctx, config.Query)
	bar.Finish()
	fmt.Println()

	if err != nil {
		color.Red("Competitor analysis aborted: %v", err)
	}
	return competitors
}

func generateArticle(ctx context.Context, config Config, competitorAnalysis string) error {
	engine, err := llm.NewWithConfig(llm.EngineConfig{
		Model:       config.Model,
		MaxTokens:   config.MaxTokens,
		BaseURL:     config.BaseURL,
		Temperature: config.Temperature,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize generation engine: %v", err)
	}

	w := writer.NewWithConfig(engine, writer.WriterConfig{
		WordCount: config.WordCount,
		Tone:      config.Tone,
		Audience:  config.Audience,
		OutputDir: config.OutputDir,
	})

	keywords := splitKeywords(config.Keywords)
	req := writer.ArticleRequest{
		Topic:             config.Topic,
		Keywords:          keywords,
		CompetitorSummary: competitorAnalysis,
	}

	var content string
	if config.Streaming {
		stream, err := w.GenerateArticleStream(ctx, req)
		if err != nil {
			return err
		}

		spinner := getSpinner(" Generating blog post...")
		firstChunk := true
		var b strings.Builder
		for chunk := range stream {
			if strings.HasPrefix(chunk, "Error:") {
				spinner.Finish()
				return fmt.Errorf("%s", chunk)
			}
			if firstChunk {
				spinner.Finish()
				firstChunk = false
				fmt.Println()
			}
			fmt.Print(chunk)
			b.WriteString(chunk)
		}
		if firstChunk {
			spinner.Finish()
		}
		fmt.Println()
		content = b.String()
	} else {
		spinner := getSpinner(" Generating blog post...")
		article, err := w.GenerateArticle(ctx, req)
		spinner.Finish()
		if err != nil {
			return err
		}
		content = article.Content
		fmt.Printf("\n%s\n", content)
	}

	if !config.NoSave {
		path, err := w.Save(content, "blog")
		if err != nil {
			return err
		}
		color.Green("✓ Blog post saved to %s", path)
	}

	printSEOReport(config, content, config.Topic, keywords)
	return nil
}

func analyzeText(ctx context.Context, config Config) error {
	text, err := readText(config.TextFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to analyze")
	}

	// Use the first line as the title when it looks like one
	title := ""
	if first := strings.SplitN(text, "\n", 2)[0]; len(first) < 120 {
		title = strings.TrimSpace(first)
	}

	printSEOReport(config, text, title, splitKeywords(config.Keywords))

	if config.Recommend {
		engine, err := llm.NewWithConfig(llm.EngineConfig{
			Model:       config.Model,
			MaxTokens:   config.MaxTokens,
			BaseURL:     config.BaseURL,
			Temperature: config.Temperature,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize generation engine: %v", err)
		}
		w := writer.NewWithConfig(engine, writer.WriterConfig{})

		keywords := splitKeywords(config.Keywords)
		extracted := seo.ExtractKeywords(text, 5, config.Stopwords...)

		spinner := getSpinner(" Asking for SEO recommendations...")
		recommendations, err := w.RecommendSEO(ctx, text, append(keywords, extracted...))
		spinner.Finish()
		if err != nil {
			return err
		}
		color.Cyan("\nSEO Recommendations")
		fmt.Println(recommendations)
	}

	return nil
}

func printSEOReport(config Config, text, title string, keywords []string) {
	extracted := seo.ExtractKeywords(text, config.TopKeywords, config.Stopwords...)
	if len(extracted) > 0 {
		color.Cyan("\nExtracted keywords: %s", strings.Join(extracted, ", "))
	}

	report := seo.CalculateReadability(text)
	color.Cyan("\nReadability Metrics")
	fmt.Printf("  Word count:          %d\n", report.WordCount)
	fmt.Printf("  Sentence count:      %d\n", report.SentenceCount)
	fmt.Printf("  Avg sentence length: %.1f\n", report.AvgSentenceLength)
	fmt.Printf("  Avg word length:     %.1f\n", report.AvgWordLength)
	fmt.Printf("  Reading level:       %s\n", report.ReadingLevel)

	if title != "" {
		if len(keywords) == 0 {
			keywords = extracted
			if len(keywords) > 5 {
				keywords = keywords[:5]
			}
		}

		description := text
		if runes := []rune(description); len(runes) > 160 {
			description = string(runes[:160])
		}

		color.Cyan("\nSuggested Meta Tags")
		fmt.Println(seo.GenerateMetaTags(title, description, keywords))
	}
}

func readText(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %v", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %v", path, err)
	}
	return string(data), nil
}
