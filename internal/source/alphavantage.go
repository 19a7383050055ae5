package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lokwah/hknewsdesk/internal/infra"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

const (
	alphaVantageBaseURL = "https://www.alphavantage.co/query"
	alphaVantageCap     = 10

	// Alpha Vantage's NEWS_SENTIMENT time format, e.g. "20240101T000000".
	alphaVantageTimeLayout = "20060102T150405"
)

// AlphaVantage fetches articles from the Alpha Vantage NEWS_SENTIMENT feed.
// The feed only understands bare symbols, so the exchange suffix is stripped
// before querying. Requires an API key.
type AlphaVantage struct {
	apiKey  string
	limiter *infra.RateLimiter
}

// NewAlphaVantage creates the Alpha Vantage adapter with the given API key.
func NewAlphaVantage(apiKey string) *AlphaVantage {
	return &AlphaVantage{
		apiKey:  apiKey,
		limiter: infra.NewRateLimiter(1, time.Second),
	}
}

// Name returns the provider name.
func (a *AlphaVantage) Name() string { return "Alpha Vantage" }

type alphaVantageResponse struct {
	Feed []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		TimePublished string `json:"time_published"`
		Source        string `json:"source"`
		Summary       string `json:"summary"`
		TickerSent    []struct {
			Ticker string `json:"ticker"`
		} `json:"ticker_sentiment"`
	} `json:"feed"`
}

// FetchNews returns sentiment-feed articles for the queried ticker.
func (a *AlphaVantage) FetchNews(ctx context.Context, q Query) ([]models.Article, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("tickers", BaseTicker(q.Ticker))
	params.Set("limit", fmt.Sprint(alphaVantageCap))
	params.Set("apikey", a.apiKey)

	var resp alphaVantageResponse
	if err := infra.GetJSON(ctx, alphaVantageBaseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("alphavantage %s: %w", q.Ticker, err)
	}

	articles := make([]models.Article, 0, len(resp.Feed))
	for _, item := range resp.Feed {
		if !validTitle(item.Title) {
			continue
		}
		link := item.URL
		if link == "" {
			link = "#"
		}
		src := item.Source
		if src == "" {
			src = a.Name()
		}
		keywords := make([]string, 0, len(item.TickerSent))
		for _, ts := range item.TickerSent {
			keywords = append(keywords, ts.Ticker)
		}
		articles = append(articles, models.Article{
			Title:     item.Title,
			Link:      link,
			Source:    src,
			Published: parseTimeOrNow(alphaVantageTimeLayout, item.TimePublished),
			Keywords:  keywords,
			Region:    "Global",
			Summary:   models.TruncateSummary(item.Summary),
		})
	}

	return capArticles(articles, alphaVantageCap), nil
}
