package news

import (
	"context"
	"time"

	"github.com/lokwah/hknewsdesk/internal/source"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

// headlineCacheKey is the singleton key for the market-wide headline pool.
const headlineCacheKey = "headlines"

// GetHeadlines returns market-wide headlines from the fixed,
// ticker-independent source set (Wall Street CN global markets, Google News
// Hong-Kong-business, Google News global-markets), served from cache within
// its TTL window. Like the ticker pipeline, it cannot fail on upstream
// errors: total source failure yields an empty pool.
func (a *Aggregator) GetHeadlines(ctx context.Context) ([]models.Article, error) {
	ttl := time.Duration(a.cfg.News.HeadlineCacheTTL) * time.Second

	v, err := a.cache.GetOrCompute(headlineCacheKey, ttl, func() (any, error) {
		return a.fetchHeadlines(ctx), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Article), nil
}

// fetchHeadlines runs the uncached headline pipeline. Headline sources take
// an empty query: none of them are ticker-addressable, and each stamps its
// own fixed region ("China Market", "Hong Kong Market", "Global Market").
func (a *Aggregator) fetchHeadlines(ctx context.Context) []models.Article {
	pool := a.fetchSources(ctx, a.headlineSources, source.Query{})

	pool = dedupe(pool, headlinePoolMinTitle)
	sortByPublished(pool)
	return truncate(pool, a.cfg.News.MaxHeadlines)
}

// InvalidateHeadlines drops the cached headline pool.
func (a *Aggregator) InvalidateHeadlines() {
	a.cache.Invalidate(headlineCacheKey)
}
