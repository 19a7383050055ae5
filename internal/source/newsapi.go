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
	newsAPIBaseURL = "https://newsapi.org/v2/everything"
	newsAPICap     = 15
	newsAPIPage    = 20
)

// NewsAPI fetches articles from the NewsAPI "everything" endpoint using a
// boolean OR query over the company name and base ticker. Greater-China
// listings get an additional AND clause restricting results to Hong Kong /
// China coverage. Requires an API key.
type NewsAPI struct {
	apiKey  string
	limiter *infra.RateLimiter
}

// NewNewsAPI creates the NewsAPI adapter with the given API key.
func NewNewsAPI(apiKey string) *NewsAPI {
	return &NewsAPI{
		apiKey:  apiKey,
		limiter: infra.NewRateLimiter(2, time.Second),
	}
}

// Name returns the provider name.
func (n *NewsAPI) Name() string { return "NewsAPI" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Description string `json:"description"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// buildQuery assembles the boolean search string for a ticker.
func (n *NewsAPI) buildQuery(q Query) string {
	var terms []string
	if q.Company != "" && q.Company != q.Ticker {
		terms = append(terms, q.Company)
	}
	terms = append(terms, BaseTicker(q.Ticker))

	joined := strings.Join(terms, " OR ")
	if IsGreaterChina(q.Ticker) {
		return fmt.Sprintf("(%s) AND (Hong Kong OR 香港 OR China OR 中国)", joined)
	}
	return joined
}

// FetchNews returns recent English and Chinese articles matching the query.
func (n *NewsAPI) FetchNews(ctx context.Context, q Query) ([]models.Article, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", n.buildQuery(q))
	params.Set("language", "en,zh")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprint(newsAPIPage))
	params.Set("from", time.Now().AddDate(0, 0, -lookbackDays(q)).Format("2006-01-02"))
	params.Set("apiKey", n.apiKey)

	var resp newsAPIResponse
	if err := infra.GetJSON(ctx, newsAPIBaseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("newsapi %s: %w", q.Ticker, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi %s: status %q", q.Ticker, resp.Status)
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, item := range resp.Articles {
		if !validTitle(item.Title) {
			continue
		}
		link := item.URL
		if link == "" {
			link = "#"
		}
		src := item.Source.Name
		if src == "" {
			src = n.Name()
		}
		published := time.Now()
		if item.PublishedAt != "" {
			published = parseTimeOrNow(time.RFC3339, item.PublishedAt)
		}
		articles = append(articles, models.Article{
			Title:     item.Title,
			Link:      link,
			Source:    src,
			Published: published,
			Region:    regionFromTitle(item.Title),
			Summary:   models.TruncateSummary(item.Description),
		})
	}

	return capArticles(articles, newsAPICap), nil
}
