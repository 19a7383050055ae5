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
	wscnArticlesURL = "https://api-prod.wallstreetcn.com/apiv1/content/articles"
	wscnCap         = 10
	wscnHeadlineCap = 8
)

// WallStreetCN fetches the Wall Street CN (华尔街见闻) global-markets article
// feed. The feed is not ticker-addressable: it contributes general Chinese
// market coverage to Greater-China ticker queries and serves as the China
// source for the headline pipeline.
type WallStreetCN struct {
	region  string
	cap     int
	limiter *infra.RateLimiter
}

// NewWallStreetCN creates the ticker-pipeline variant.
func NewWallStreetCN() *WallStreetCN {
	return &WallStreetCN{
		region:  "China (中文)",
		cap:     wscnCap,
		limiter: infra.NewRateLimiter(2, time.Second),
	}
}

// NewWallStreetCNHeadlines creates the headline-pipeline variant, tagged
// with the fixed headline region vocabulary.
func NewWallStreetCNHeadlines() *WallStreetCN {
	return &WallStreetCN{
		region:  "China Market",
		cap:     wscnHeadlineCap,
		limiter: infra.NewRateLimiter(2, time.Second),
	}
}

// Name returns the provider name.
func (w *WallStreetCN) Name() string { return "华尔街见闻" }

type wscnResponse struct {
	Data struct {
		Items []struct {
			ID          int64  `json:"id"`
			Title       string `json:"title"`
			Summary     string `json:"summary"`
			DisplayTime int64  `json:"display_time"`
		} `json:"items"`
	} `json:"data"`
}

// FetchNews returns the latest global-markets articles. The query is ignored
// apart from rate limiting; the feed has no per-ticker addressing.
func (w *WallStreetCN) FetchNews(ctx context.Context, _ Query) ([]models.Article, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprint(w.cap+5))
	params.Set("channel", "global-markets")

	var resp wscnResponse
	if err := infra.GetJSON(ctx, wscnArticlesURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("wallstreetcn: %w", err)
	}

	articles := make([]models.Article, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		if !validTitle(item.Title) {
			continue
		}
		articles = append(articles, models.Article{
			Title:     item.Title,
			Link:      fmt.Sprintf("https://wallstreetcn.com/articles/%d", item.ID),
			Source:    w.Name(),
			Published: unixOrNow(item.DisplayTime),
			Region:    w.region,
			Summary:   models.TruncateSummary(item.Summary),
		})
	}

	return capArticles(articles, w.cap), nil
}
