// hknewsdesk — Multi-source HK/China equity news aggregator
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lokwah/hknewsdesk/api"
	"github.com/lokwah/hknewsdesk/internal/config"
	"github.com/lokwah/hknewsdesk/internal/market"
	"github.com/lokwah/hknewsdesk/internal/news"
	"github.com/lokwah/hknewsdesk/pkg/models"
	"github.com/lokwah/hknewsdesk/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hknewsdesk",
	Short: "hknewsdesk — Multi-source HK/China equity news aggregator",
	Long: `hknewsdesk aggregates equity news for Hong Kong and mainland China
listings from Yahoo Finance, Google News (English and Chinese), Sina
Finance, East Money, Wall Street CN, and optional keyed providers
(Finnhub, NewsAPI, Alpha Vantage), then deduplicates, classifies by
industry, and serves the merged pool over CLI and HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(headlinesCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// newAggregator wires a fresh pipeline from the loaded config.
func newAggregator() *news.Aggregator {
	return news.NewAggregator(cfg, market.NewClient())
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hknewsdesk %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [tickers...]",
	Short: "Fetch aggregated news for one or more tickers",
	Long: `Fetch, deduplicate, and rank news for the given tickers across all
configured sources.

Examples:
  hknewsdesk news 0700.HK
  hknewsdesk news 0700.HK 9988.HK BABA`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tickers := normalizeTickers(args)
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
		defer cancel()

		fmt.Printf("📰 Fetching news for %s ...\n\n", strings.Join(tickers, ", "))

		agg := newAggregator()
		articles, err := agg.GetAllNews(ctx, tickers)
		if err != nil {
			return fmt.Errorf("news fetch failed: %w", err)
		}

		printArticles(articles, limit)
		return nil
	},
}

func init() {
	newsCmd.Flags().Int("limit", 0, "max articles to print (0 = all)")
}

// --- Headlines Command ---

var headlinesCmd = &cobra.Command{
	Use:   "headlines",
	Short: "Fetch market-wide HK/China and global headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
		defer cancel()

		fmt.Println("🗞️  Fetching market headlines ...")
		fmt.Println()

		agg := newAggregator()
		articles, err := agg.GetHeadlines(ctx)
		if err != nil {
			return fmt.Errorf("headline fetch failed: %w", err)
		}

		printArticles(articles, limit)
		return nil
	},
}

func init() {
	headlinesCmd.Flags().Int("limit", 0, "max headlines to print (0 = all)")
}

// --- Filter Command ---

var filterCmd = &cobra.Command{
	Use:   "filter [ticker] [pool tickers...]",
	Short: "Fetch news for a ticker set and show only articles that mention the first ticker",
	Long: `Aggregate news for the given ticker set (defaulting to just the first
ticker) and print the articles that mention the first one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := strings.ToUpper(strings.TrimSpace(args[0]))
		poolTickers := normalizeTickers(args)

		ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
		defer cancel()

		agg := newAggregator()
		pool, err := agg.GetAllNews(ctx, poolTickers)
		if err != nil {
			return fmt.Errorf("news fetch failed: %w", err)
		}

		articles := news.TickerNews(ticker, pool)
		fmt.Printf("🔎 %d of %d articles mention %s\n\n", len(articles), len(pool), ticker)

		printArticles(articles, 0)
		return nil
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Starting hknewsdesk API server on %s\n", addr)

		srv := api.NewServer(cfg)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  hknewsdesk — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  HKEX Status:   %s\n", utils.MarketStatus())
		fmt.Printf("  Time (HKT):    %s\n", utils.FormatDateTimeHKT(utils.NowHKT()))
		fmt.Println()

		// Config summary
		fmt.Println("  Configuration:")
		fmt.Printf("    News cache TTL:      %ds\n", cfg.News.CacheTTL)
		fmt.Printf("    Headline cache TTL:  %ds\n", cfg.News.HeadlineCacheTTL)
		fmt.Printf("    Max articles:        %d\n", cfg.News.MaxArticles)
		fmt.Printf("    Max headlines:       %d\n", cfg.News.MaxHeadlines)
		fmt.Printf("    Lookback window:     %d days\n", cfg.News.LookbackDays)
		fmt.Printf("    API Server:          %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		// API keys status
		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "❌ not set (adapter disabled)"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Helpers ---

func normalizeTickers(args []string) []string {
	tickers := make([]string, 0, len(args))
	for _, a := range args {
		t := strings.ToUpper(strings.TrimSpace(a))
		if t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

func printArticles(articles []models.Article, limit int) {
	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	for i, a := range articles {
		fmt.Printf("%2d. %s\n", i+1, a.Title)
		fmt.Printf("    %s | %s | %s | %s\n",
			a.Published.Format("2006-01-02 15:04"),
			a.Source,
			a.Region,
			strings.Join(a.Industries, ", "))
		if a.Link != "" {
			fmt.Printf("    %s\n", a.Link)
		}
		fmt.Println()
	}
}
