package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lokwah/hknewsdesk/internal/infra"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

const yahooNewsCap = 15

// Yahoo fetches company news from the Yahoo Finance v1 search API. Free and
// keyless, with structured timestamps and canonical links, so it runs first
// in the priority order and wins title collisions.
type Yahoo struct {
	limiter *infra.RateLimiter
}

// NewYahoo creates the Yahoo Finance news adapter.
func NewYahoo() *Yahoo {
	return &Yahoo{
		limiter: infra.NewRateLimiter(5, time.Second),
	}
}

// Name returns the provider name.
func (y *Yahoo) Name() string { return "Yahoo Finance" }

type yahooSearchResponse struct {
	News []struct {
		Title                string `json:"title"`
		Publisher            string `json:"publisher"`
		Link                 string `json:"link"`
		ProviderPublishTime  int64  `json:"providerPublishTime"`
		Summary              string `json:"summary"`
	} `json:"news"`
}

// FetchNews returns recent articles for the queried ticker.
func (y *Yahoo) FetchNews(ctx context.Context, q Query) ([]models.Article, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v1/finance/search?q=%s&quotesCount=0&newsCount=%d",
		url.QueryEscape(q.Ticker), yahooNewsCap,
	)

	var resp yahooSearchResponse
	if err := infra.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("yahoo news %s: %w", q.Ticker, err)
	}

	articles := make([]models.Article, 0, len(resp.News))
	for _, item := range resp.News {
		if !validTitle(item.Title) {
			continue
		}
		link := item.Link
		if link == "" {
			link = "#"
		}
		publisher := item.Publisher
		if publisher == "" {
			publisher = y.Name()
		}
		articles = append(articles, models.Article{
			Title:     item.Title,
			Link:      link,
			Source:    publisher,
			Published: unixOrNow(item.ProviderPublishTime),
			Region:    regionForTicker(q.Ticker),
			Summary:   models.TruncateSummary(item.Summary),
		})
	}

	return capArticles(articles, yahooNewsCap), nil
}
