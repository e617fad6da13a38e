// Package main provides the cg CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/crossref"
	"github.com/matsen/citegraph/internal/resolve"
	"github.com/matsen/citegraph/internal/s2"
	"github.com/matsen/citegraph/internal/search"
	"github.com/matsen/citegraph/internal/source"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// verbose turns on debug logging to stderr
	verbose bool

	logger = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logger.Sync() }()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cg",
	Short: "Citation graph explorer",
	Long: `cg resolves a DOI and draws the paper's citation graph.

The paper is looked up in Semantic Scholar, which provides references and
citations. If Semantic Scholar cannot answer, Crossref is tried for basic
metadata. The result is a graph with the paper at its center, the works it
cites pointing away from it and the works citing it pointing in.

All commands output JSON by default for agent integration.
Use --human for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
}

func init() {
	// Load .env file if present (for S2_API_KEY, CROSSREF_MAILTO)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.Version = Version
}

// newLogger builds a stderr logger: warnings only by default, everything
// with --verbose.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if humanOutput {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v\n\n%s", err, config.HelpfulConfigMessage())
	}
	return cfg
}

// newS2Client builds the rich source from config.
func newS2Client(cfg *config.Config) *s2.Client {
	opts := []s2.ClientOption{
		s2.WithAPIKey(cfg.S2APIKey),
		s2.WithBaseURL(cfg.S2BaseURL),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, s2.WithRateLimit(cfg.RateLimit))
	}
	return s2.NewClient(opts...)
}

// newCrossrefClient builds the minimal source from config.
func newCrossrefClient(cfg *config.Config) *crossref.Client {
	opts := []crossref.ClientOption{
		crossref.WithMailto(cfg.CrossrefMailto),
		crossref.WithBaseURL(cfg.CrossrefBaseURL),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, crossref.WithRateLimit(cfg.RateLimit))
	}
	return crossref.NewClient(opts...)
}

// sourcesFor returns the adapters in fallback order. An empty name selects
// the full chain.
func sourcesFor(cfg *config.Config, name string) ([]source.Adapter, error) {
	switch name {
	case "", "all":
		return []source.Adapter{newS2Client(cfg), newCrossrefClient(cfg)}, nil
	case s2.Name:
		return []source.Adapter{newS2Client(cfg)}, nil
	case crossref.Name:
		return []source.Adapter{newCrossrefClient(cfg)}, nil
	default:
		return nil, fmt.Errorf("unknown source %q: must be s2, crossref, or all", name)
	}
}

// newResolver builds the fallback chain from config.
func newResolver(cfg *config.Config, adapters []source.Adapter) *resolve.Resolver {
	return resolve.New(adapters,
		resolve.WithTimeout(cfg.Timeout),
		resolve.WithLogger(logger),
	)
}

// mustNewSearcher builds the full search pipeline from config.
func mustNewSearcher() (*search.Searcher, *resolve.Resolver, *config.Config) {
	cfg := mustLoadConfig()
	adapters, err := sourcesFor(cfg, "")
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	resolver := newResolver(cfg, adapters)
	return search.New(resolver, search.WithLogger(logger)), resolver, cfg
}
