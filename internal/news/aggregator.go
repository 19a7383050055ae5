// Package news implements the aggregation pipeline: fan-out to the source
// adapters per ticker, merge in priority order, deduplicate, classify,
// sort, truncate, and cache.
package news

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lokwah/hknewsdesk/internal/config"
	"github.com/lokwah/hknewsdesk/internal/industry"
	"github.com/lokwah/hknewsdesk/internal/infra"
	"github.com/lokwah/hknewsdesk/internal/source"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

// Dedup gates: the merged ticker pool admits short CJK titles, headline
// dedup keeps the stricter gate.
const (
	tickerPoolMinTitle   = 2
	headlinePoolMinTitle = 5
)

// ProfileResolver resolves a ticker to company metadata. Satisfied by
// market.Client; swapped for a stub in tests.
type ProfileResolver interface {
	GetProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error)
}

// Aggregator runs the multi-source news pipeline. All state is fixed at
// construction; the only mutation after that is the cache, which is safe
// for concurrent use. Adapter failures are collapsed to empty results here,
// at a single boundary, with the cause logged.
type Aggregator struct {
	cfg      *config.Config
	profiles ProfileResolver
	cache    *infra.Cache

	// Ticker pipeline sources in priority order. Earlier sources win title
	// collisions: structured APIs carry more trustworthy metadata than
	// scraped feeds, so Yahoo runs first.
	yahoo        source.Source
	googleZH     source.Source
	yahooHK      source.Source
	sina         source.Source
	eastMoney    source.Source
	wallstreetCN source.Source
	googleEN     source.Source
	finnhub      source.Source // nil without FINNHUB_API_KEY
	newsAPI      source.Source // nil without NEWSAPI_KEY
	alphaVantage source.Source // nil without ALPHAVANTAGE_KEY

	headlineSources []source.Source
}

// NewAggregator wires the pipeline from configuration. Credentialed
// adapters are only constructed when their key is present, so a disabled
// adapter can never make a network call.
func NewAggregator(cfg *config.Config, profiles ProfileResolver) *Aggregator {
	a := &Aggregator{
		cfg:          cfg,
		profiles:     profiles,
		cache:        infra.NewCache(time.Duration(cfg.News.CacheTTL) * time.Second),
		yahoo:        source.NewYahoo(),
		googleZH:     source.NewGoogleNewsChinese(),
		yahooHK:      source.NewYahooHK(),
		sina:         source.NewSina(),
		eastMoney:    source.NewEastMoney(),
		wallstreetCN: source.NewWallStreetCN(),
		googleEN:     source.NewGoogleNews(),
		headlineSources: []source.Source{
			source.NewWallStreetCNHeadlines(),
			source.NewGoogleNewsHKHeadlines(),
			source.NewGoogleNewsGlobalHeadlines(),
		},
	}

	if cfg.Keys.Finnhub != "" {
		a.finnhub = source.NewFinnhub(cfg.Keys.Finnhub)
	}
	if cfg.Keys.NewsAPI != "" {
		a.newsAPI = source.NewNewsAPI(cfg.Keys.NewsAPI)
	}
	if cfg.Keys.AlphaVantage != "" {
		a.alphaVantage = source.NewAlphaVantage(cfg.Keys.AlphaVantage)
	}

	return a
}

// sourcesFor returns the adapters for one ticker in priority order.
// Greater-China listings get the Chinese-language bundle between Yahoo and
// the generic English sources.
func (a *Aggregator) sourcesFor(ticker string) []source.Source {
	sources := []source.Source{a.yahoo}

	if source.IsGreaterChina(ticker) {
		sources = append(sources, a.googleZH, a.yahooHK, a.sina, a.eastMoney, a.wallstreetCN)
	}

	sources = append(sources, a.googleEN)

	for _, s := range []source.Source{a.finnhub, a.newsAPI, a.alphaVantage} {
		if s != nil {
			sources = append(sources, s)
		}
	}

	return sources
}

// GetAllNews returns the aggregated, deduplicated, sorted news pool for the
// ticker set, served from cache within the TTL window. The call cannot fail
// on upstream errors: a request where every source failed yields an empty
// pool, not an error.
func (a *Aggregator) GetAllNews(ctx context.Context, tickers []string) ([]models.Article, error) {
	ttl := time.Duration(a.cfg.News.CacheTTL) * time.Second

	v, err := a.cache.GetOrCompute(newsCacheKey(tickers), ttl, func() (any, error) {
		return a.fetchAllNews(ctx, tickers), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Article), nil
}

// fetchAllNews runs the uncached pipeline for a ticker set.
func (a *Aggregator) fetchAllNews(ctx context.Context, tickers []string) []models.Article {
	var pool []models.Article

	for _, ticker := range tickers {
		q := source.Query{
			Ticker:  ticker,
			Company: a.resolveCompany(ctx, ticker),
			Days:    a.cfg.News.LookbackDays,
		}
		pool = append(pool, a.fetchSources(ctx, a.sourcesFor(ticker), q)...)
	}

	pool = dedupe(pool, tickerPoolMinTitle)
	sortByPublished(pool)
	return truncate(pool, a.cfg.News.MaxArticles)
}

// fetchSources invokes the adapters concurrently (they share no mutable
// state) but concatenates results strictly in priority order, preserving
// the dedup tie-break. A failed adapter contributes an empty slice.
func (a *Aggregator) fetchSources(ctx context.Context, sources []source.Source, q source.Query) []models.Article {
	results := make([][]models.Article, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sources {
		i, s := i, s
		g.Go(func() error {
			articles, err := s.FetchNews(gctx, q)
			if err != nil {
				log.Printf("news: source %s failed for %s: %v", s.Name(), q.Ticker, err)
				return nil // adapter failure never propagates
			}
			results[i] = articles
			return nil
		})
	}
	_ = g.Wait() // goroutines only return nil

	var merged []models.Article
	for _, articles := range results {
		for _, art := range articles {
			art.Industries = industry.Classify(art.Title, art.Summary)
			merged = append(merged, art)
		}
	}
	return merged
}

// resolveCompany looks up a display name for query building, falling back
// to the raw ticker when the market-data provider has no answer.
func (a *Aggregator) resolveCompany(ctx context.Context, ticker string) string {
	if a.profiles == nil {
		return ticker
	}
	profile, err := a.profiles.GetProfile(ctx, ticker)
	if err != nil || profile.ShortName == "" {
		return ticker
	}
	return profile.ShortName
}

// newsCacheKey builds the cache key for a ticker set. The set is unordered:
// ["0700.HK","9988.HK"] and ["9988.HK","0700.HK"] share an entry.
func newsCacheKey(tickers []string) string {
	normalized := make([]string, len(tickers))
	for i, t := range tickers {
		normalized[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	sort.Strings(normalized)
	return "news:" + strings.Join(normalized, ",")
}

// InvalidateNews drops the cached pool for a ticker set, forcing the next
// call to refetch.
func (a *Aggregator) InvalidateNews(tickers []string) {
	a.cache.Invalidate(newsCacheKey(tickers))
}
