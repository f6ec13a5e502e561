package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ricette"
	"github.com/fwojciec/ricette/crawl"
	"github.com/fwojciec/ricette/fs"
	"github.com/fwojciec/ricette/gemini"
	"github.com/fwojciec/ricette/goquery"
	ricettehttp "github.com/fwojciec/ricette/http"
	"github.com/fwojciec/ricette/rod"
	ricetteslog "github.com/fwojciec/ricette/slog"
	"github.com/fwojciec/ricette/sqlite"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Resolved configuration. Set by Run().
	Config *Config

	// SQLite database used by the index command.
	DB *sqlite.DB

	// Page fetcher used by the crawl command.
	Fetcher ricette.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	if m.Fetcher != nil {
		firstErr = m.Fetcher.Close()
	}
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ricette"),
		kong.Description("Crawl GialloZafferano recipes into resumable JSON chunks"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ricette --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config, cli.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	m.Config = cfg

	deps.Logger = newLogger(stderr, cli.Verbose).With("run", uuid.NewString())
	deps.Chunks = fs.NewChunkDir(cfg.OutputDir)
	defer m.Close()

	switch strings.Fields(kongCtx.Command())[0] {
	case "crawl":
		if err := m.wireCrawl(deps); err != nil {
			return err
		}
	case "index":
		if err := m.wireIndex(deps); err != nil {
			return err
		}
	case "classify":
		if err := m.wireClassify(deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) wireCrawl(deps *Dependencies) error {
	cfg := m.Config

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" {
		return ricette.Errorf(ricette.EINVALID, "invalid base URL %q", cfg.BaseURL)
	}

	if cfg.Browser {
		fetcher, err := rod.NewFetcher(rod.WithTimeout(cfg.Timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Fetcher = fetcher
	} else {
		m.Fetcher = ricettehttp.NewFetcher(
			ricettehttp.WithTimeout(cfg.Timeout),
			ricettehttp.WithUserAgent(cfg.UserAgent),
		)
	}

	extractor := goquery.NewExtractor(
		goquery.WithBaseURL(base),
		goquery.WithUnknownLabelFunc(ricetteslog.UnknownLabelLogger(deps.Logger)),
	)

	deps.Pipeline = &crawl.Pipeline{
		Fetcher:                  ricetteslog.NewLoggingFetcher(m.Fetcher, deps.Logger),
		Extractor:                ricetteslog.NewLoggingExtractor(extractor, deps.Logger),
		Frontier:                 fs.NewFrontierFile(cfg.OutputDir),
		Chunks:                   deps.Chunks,
		RateLimiter:              crawl.NewLimiter(cfg.RequestDelay),
		BaseURL:                  cfg.BaseURL,
		CategoryPages:            *cfg.CategoryPages,
		Concurrency:              cfg.Concurrency,
		DeleteFrontierOnComplete: *cfg.DeleteFrontierOnComplete,
	}
	return nil
}

func (m *Main) wireIndex(deps *Dependencies) error {
	m.DB = sqlite.NewDB(m.Config.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set RICETTE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.Config.DBPath, err)
	}

	sink := ricetteslog.NewLoggingSink(sqlite.NewDocumentSink(m.DB), deps.Logger)
	deps.Indexer = crawl.NewRecipeIndexer(sink, m.Config.Index)
	return nil
}

func (m *Main) wireClassify(deps *Dependencies) error {
	client, err := gemini.NewClient(deps.Ctx, m.Config.GeminiAPIKey)
	if err != nil {
		if ricette.ErrorCode(err) == ricette.EINVALID {
			fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		} else {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		}
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	classifier := gemini.NewClassifier(client, gemini.WithModel(m.Config.GeminiModel))
	deps.Classifier = ricetteslog.NewLoggingClassifier(classifier, deps.Logger)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
