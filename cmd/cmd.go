package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hward/blogsmith/internal/models"
	cfgPkg "github.com/hward/blogsmith/pkg/config"
	"github.com/schollz/progressbar/v3"
)

type Config struct {
	Topic          string
	Query          string
	TextFile       string
	Keywords       string
	Tone           string
	Audience       string
	WordCount      int
	NumCompetitors int
	FetchTimeout   int
	RequestDelay   int
	UserAgent      string
	TopKeywords    int
	Stopwords      []string
	APIKey         string
	CSEID          string
	Endpoint       string
	SearchTimeout  int
	Model          string
	BaseURL        string
	MaxTokens      int
	Temperature    float64
	DBUrl          string
	TableName      string
	VectorDim      int
	BatchSize      int
	OutputDir      string
	Streaming      bool
	Recommend      bool
	NoSave         bool
}

func parseFlags() Config {
	var config Config
	var configPath string

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&config.Topic, "topic", "", "Blog topic to generate an article for")
	flag.StringVar(&config.Query, "query", "", "Search query for competitor analysis")
	flag.StringVar(&config.TextFile, "file", "", "Text file to analyze (use '-' for stdin)")
	flag.StringVar(&config.Keywords, "keywords", "", "Target keywords, comma separated")
	flag.StringVar(&config.Tone, "tone", "", "Article tone")
	flag.StringVar(&config.Audience, "audience", "", "Target audience")
	flag.IntVar(&config.WordCount, "word-count", 0, "Target article word count")
	flag.IntVar(&config.NumCompetitors, "competitors", 0, "Number of competitor pages to analyze")
	flag.StringVar(&config.Model, "model", "", "LLM model to use")
	flag.StringVar(&config.BaseURL, "ollama-url", os.Getenv("OLLAMA_BASE_URL"), "Ollama server URL")
	flag.StringVar(&config.DBUrl, "db-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string for page snapshots")
	flag.BoolVar(&config.Streaming, "stream", true, "Stream generated content")
	flag.BoolVar(&config.Recommend, "recommend", false, "Ask the LLM for SEO recommendations in analyze mode")
	flag.BoolVar(&config.NoSave, "no-save", false, "Do not save generated articles")
	flag.Parse()

	cfg, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		color.Red("Failed to load config: %v", err)
		os.Exit(1)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("config: %v", e)
		}
		os.Exit(1)
	}

	// Flags override file config only when set
	if config.Tone == "" {
		config.Tone = cfg.Writer.Tone
	}
	if config.Audience == "" {
		config.Audience = cfg.Writer.Audience
	}
	if config.WordCount == 0 {
		config.WordCount = cfg.Writer.WordCount
	}
	if config.NumCompetitors == 0 {
		config.NumCompetitors = cfg.Analyzer.NumCompetitors
	}
	if config.Model == "" {
		config.Model = cfg.LLM.Model
	}
	if config.BaseURL == "" {
		config.BaseURL = cfg.LLM.BaseURL
	}
	if config.DBUrl == "" {
		config.DBUrl = cfg.Database.URL
	}

	config.FetchTimeout = cfg.Analyzer.FetchTimeout
	config.RequestDelay = cfg.Analyzer.RequestDelay
	config.UserAgent = cfg.Analyzer.UserAgent
	config.TopKeywords = cfg.SEO.TopKeywords
	config.Stopwords = cfg.SEO.CustomStopwords
	config.APIKey = cfg.Search.APIKey
	config.CSEID = cfg.Search.CSEID
	config.Endpoint = cfg.Search.Endpoint
	config.SearchTimeout = cfg.Search.Timeout
	config.MaxTokens = cfg.LLM.MaxTokens
	config.Temperature = cfg.LLM.Temperature
	config.TableName = cfg.Database.TableName
	config.VectorDim = cfg.Database.VectorDim
	config.BatchSize = cfg.Database.BatchSize
	config.OutputDir = cfg.Writer.OutputDir

	return config
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func printCompetitorTable(competitors []models.Competitor) {
	header := color.New(color.FgCyan, color.Bold)
	header.Printf("\n%-4s %-40s %-30s %8s\n", "Rank", "Title", "H1", "Words")

	for _, c := range competitors {
		fmt.Printf("%-4d %-40s %-30s %8d\n", c.Rank, truncate(c.Title, 40), truncate(c.H1, 30), c.WordCount)
		color.New(color.Faint).Printf("     %s\n", c.URL)
		color.New(color.Faint).Printf("     %s\n", truncate(c.MetaDescription, 80))
	}
}

// competitorSummary renders the table as markdown for the generation
// prompt, mirroring what gets fed to the model alongside the topic.
func competitorSummary(competitors []models.Competitor) string {
	if len(competitors) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("| Rank | Title | H1 | Meta Description | Word Count |\n")
	b.WriteString("|------|-------|----|------------------|-----------|\n")
	for _, c := range competitors {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %d |\n",
			c.Rank, c.Title, c.H1, c.MetaDescription, c.WordCount)
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	var keywords []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
