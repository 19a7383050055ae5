package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/lokwah/hknewsdesk/internal/infra"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

const googleNewsCap = 10

// GoogleNews fetches articles from a Google News RSS search endpoint. The
// same adapter serves four configurations: per-ticker English, per-ticker
// Chinese-locale, and the two fixed headline queries (Hong Kong business,
// global markets). Keyless but scrape-adjacent: result quality depends on
// Google's locale routing.
type GoogleNews struct {
	name       string
	localeArgs string                // hl/gl/ceid query fragment
	buildQuery func(q Query) string  // search string; fixed for headline variants
	region     func(q Query) string  // region tag for produced articles
	titleGate  func(s string) bool
	parser     *gofeed.Parser
	limiter    *infra.RateLimiter
}

// NewGoogleNews creates the English-locale per-ticker adapter.
func NewGoogleNews() *GoogleNews {
	return &GoogleNews{
		name:       "Google News",
		localeArgs: "hl=en-US&gl=US&ceid=US:en",
		buildQuery: func(q Query) string {
			if q.Company != "" {
				return q.Company
			}
			return BaseTicker(q.Ticker)
		},
		region:    func(q Query) string { return regionForTicker(q.Ticker) },
		titleGate: validTitle,
		parser:    gofeed.NewParser(),
		limiter:   infra.NewRateLimiter(2, time.Second),
	}
}

// NewGoogleNewsChinese creates the Chinese-locale per-ticker adapter. HK
// listings are searched by bare stock code alongside the company name; the
// relaxed title gate admits short CJK headlines.
func NewGoogleNewsChinese() *GoogleNews {
	return &GoogleNews{
		name:       "Google 新闻",
		localeArgs: "hl=zh-CN&gl=HK&ceid=HK:zh-Hans",
		buildQuery: func(q Query) string {
			if IsGreaterChina(q.Ticker) {
				return BaseTicker(q.Ticker) + " OR " + q.Company
			}
			return q.Company
		},
		region:    func(Query) string { return "China/HK (中文)" },
		titleGate: validTitleCJK,
		parser:    gofeed.NewParser(),
		limiter:   infra.NewRateLimiter(2, time.Second),
	}
}

// NewGoogleNewsHKHeadlines creates the fixed Hong-Kong-business headline feed.
func NewGoogleNewsHKHeadlines() *GoogleNews {
	return &GoogleNews{
		name:       "Google 新闻",
		localeArgs: "hl=zh-CN&gl=HK&ceid=HK:zh-Hans",
		buildQuery: func(Query) string { return "Hong Kong business OR 港股" },
		region:     func(Query) string { return "Hong Kong Market" },
		titleGate:  validTitle,
		parser:     gofeed.NewParser(),
		limiter:    infra.NewRateLimiter(2, time.Second),
	}
}

// NewGoogleNewsGlobalHeadlines creates the fixed global-markets headline feed.
func NewGoogleNewsGlobalHeadlines() *GoogleNews {
	return &GoogleNews{
		name:       "Google News",
		localeArgs: "hl=en-US&gl=US&ceid=US:en",
		buildQuery: func(Query) string { return "stock market OR nasdaq OR dow jones" },
		region:     func(Query) string { return "Global Market" },
		titleGate:  validTitle,
		parser:     gofeed.NewParser(),
		limiter:    infra.NewRateLimiter(2, time.Second),
	}
}

// Name returns the provider name for this configuration.
func (g *GoogleNews) Name() string { return g.name }

// FetchNews parses the RSS search feed for the configured query.
func (g *GoogleNews) FetchNews(ctx context.Context, q Query) ([]models.Article, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feedURL := fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&%s",
		url.QueryEscape(g.buildQuery(q)), g.localeArgs,
	)

	fetchCtx, cancel := context.WithTimeout(ctx, infra.RequestTimeout)
	defer cancel()

	feed, err := g.parser.ParseURLWithContext(feedURL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("google news rss %q: %w", g.buildQuery(q), err)
	}

	region := g.region(q)
	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if !g.titleGate(item.Title) {
			continue
		}
		link := item.Link
		if link == "" {
			link = "#"
		}
		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		articles = append(articles, models.Article{
			Title:     item.Title,
			Link:      link,
			Source:    g.name,
			Published: published,
			Region:    region,
		})
	}

	return capArticles(articles, googleNewsCap), nil
}
