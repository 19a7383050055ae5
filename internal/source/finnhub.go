package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lokwah/hknewsdesk/internal/infra"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

const (
	finnhubBaseURL    = "https://finnhub.io/api/v1/company-news"
	finnhubPerSymbol  = 10
)

// Finnhub fetches company news from the Finnhub date-ranged REST endpoint.
// Requires an API key; the aggregator only constructs this adapter when one
// is configured. HK listings are queried both with and without the ".HK"
// suffix since Finnhub indexes some under the bare code.
type Finnhub struct {
	apiKey  string
	limiter *infra.RateLimiter
}

// NewFinnhub creates the Finnhub adapter with the given API key.
func NewFinnhub(apiKey string) *Finnhub {
	return &Finnhub{
		apiKey:  apiKey,
		limiter: infra.NewRateLimiter(5, time.Second),
	}
}

// Name returns the provider name.
func (f *Finnhub) Name() string { return "Finnhub" }

type finnhubNewsItem struct {
	Headline string `json:"headline"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Datetime int64  `json:"datetime"`
	Related  string `json:"related"`
	Summary  string `json:"summary"`
}

// FetchNews returns recent articles over the query's lookback window.
func (f *Finnhub) FetchNews(ctx context.Context, q Query) ([]models.Article, error) {
	symbols := []string{q.Ticker}
	if strings.Contains(strings.ToUpper(q.Ticker), ".HK") {
		symbols = append(symbols, BaseTicker(q.Ticker))
	}

	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays(q))

	var all []models.Article
	for _, symbol := range symbols {
		items, err := f.fetchSymbol(ctx, symbol, start, end)
		if err != nil {
			return nil, err
		}
		region := regionForTicker(q.Ticker)
		for _, item := range capItems(items, finnhubPerSymbol) {
			if !validTitle(item.Headline) {
				continue
			}
			link := item.URL
			if link == "" {
				link = "#"
			}
			src := item.Source
			if src == "" {
				src = f.Name()
			}
			var keywords []string
			if item.Related != "" {
				keywords = strings.Split(item.Related, ",")
			}
			all = append(all, models.Article{
				Title:     item.Headline,
				Link:      link,
				Source:    src,
				Published: unixOrNow(item.Datetime),
				Keywords:  keywords,
				Region:    region,
				Summary:   models.TruncateSummary(item.Summary),
			})
		}
	}

	return all, nil
}

func (f *Finnhub) fetchSymbol(ctx context.Context, symbol string, start, end time.Time) ([]finnhubNewsItem, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", start.Format("2006-01-02"))
	params.Set("to", end.Format("2006-01-02"))
	params.Set("token", f.apiKey)

	var items []finnhubNewsItem
	if err := infra.GetJSON(ctx, finnhubBaseURL+"?"+params.Encode(), &items); err != nil {
		return nil, fmt.Errorf("finnhub news %s: %w", symbol, err)
	}
	return items, nil
}

func capItems(items []finnhubNewsItem, n int) []finnhubNewsItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}
