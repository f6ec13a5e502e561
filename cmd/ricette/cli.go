package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/ricette"
	"github.com/fwojciec/ricette/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Pipeline   *crawl.Pipeline
	Chunks     ricette.ChunkStore
	Indexer    ricette.Indexer
	Classifier ricette.IngredientClassifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string `short:"C" type:"path" env:"RICETTE_CONFIG" help:"YAML config file"`
	OutputDir string `short:"o" type:"path" env:"RICETTE_OUTPUT_DIR" help:"Directory holding the frontier and recipe chunks (default: data)"`
	Verbose   bool   `short:"v" help:"Log every fetch and extraction"`

	Crawl    CrawlCmd    `cmd:"" help:"Discover and extract recipes, resuming previous progress"`
	Index    IndexCmd    `cmd:"" help:"Load crawled recipes into the document index"`
	Classify ClassifyCmd `cmd:"" help:"Classify the ingredients of a crawled recipe"`
}

// Flags returns the configuration set on the command line or environment.
func (c *CLI) Flags() Config {
	return Config{
		OutputDir:                c.OutputDir,
		RequestDelay:             c.Crawl.Delay,
		CategoryPages:            c.Crawl.Pages,
		DeleteFrontierOnComplete: c.Crawl.DeleteFrontier,
		BaseURL:                  c.Crawl.BaseURL,
		Concurrency:              c.Crawl.Concurrency,
		Timeout:                  c.Crawl.Timeout,
		UserAgent:                c.Crawl.UserAgent,
		Browser:                  c.Crawl.Browser,
		DBPath:                   c.Index.DB,
		Index:                    c.Index.Index,
		GeminiAPIKey:             c.Classify.APIKey,
		GeminiModel:              c.Classify.Model,
	}
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Delay          time.Duration `short:"d" env:"RICETTE_DELAY" help:"Pause between requests (default: 2s, negative disables)"`
	Pages          *int          `short:"n" env:"RICETTE_PAGES" help:"Category listing pages after the first (default: 440, 0 walks only the first)"`
	DeleteFrontier *bool         `env:"RICETTE_DELETE_FRONTIER" help:"Delete the URL frontier after a complete run (--delete-frontier=false overrides the config file)"`
	BaseURL        string        `env:"RICETTE_BASE_URL" help:"First category listing page"`
	Concurrency    int           `short:"c" env:"RICETTE_CONCURRENCY" help:"Concurrent recipe fetches (default: 1)"`
	Timeout        time.Duration `short:"t" env:"RICETTE_TIMEOUT" help:"Fetch timeout per page (default: 10s)"`
	UserAgent      string        `env:"RICETTE_USER_AGENT" help:"User-Agent for HTTP requests"`
	Browser        bool          `short:"b" env:"RICETTE_BROWSER" help:"Render pages in headless Chrome"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	DB    string `type:"path" env:"RICETTE_DB" help:"SQLite database path (default: ricette.db)"`
	Index string `env:"RICETTE_INDEX" help:"Index name (default: recipes)"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	URL    string `arg:"" help:"Recipe URL"`
	APIKey string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model  string `env:"RICETTE_GEMINI_MODEL" help:"Gemini model"`
}
