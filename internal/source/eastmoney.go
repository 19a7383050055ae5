package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/lokwah/hknewsdesk/internal/infra"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

const (
	eastMoneySearchURL = "https://search-api-web.eastmoney.com/search/jsonp"
	eastMoneyCap       = 10
	eastMoneyCallback  = "jQuery"

	// East Money article timestamps, e.g. "2024-01-01 12:00:00" (CST).
	eastMoneyTimeLayout = "2006-01-02 15:04:05"
)

// EastMoney searches the East Money (东方财富) article index by stock code.
// The endpoint speaks JSONP, so the callback padding is stripped before
// decoding. Search hits highlight the matched term with <em> tags, which are
// removed during normalization.
type EastMoney struct {
	limiter *infra.RateLimiter
}

// NewEastMoney creates the East Money adapter.
func NewEastMoney() *EastMoney {
	return &EastMoney{
		limiter: infra.NewRateLimiter(1, time.Second),
	}
}

// Name returns the provider name.
func (e *EastMoney) Name() string { return "东方财富" }

type eastMoneyResponse struct {
	Result struct {
		Articles []struct {
			Title     string `json:"title"`
			URL       string `json:"url"`
			Date      string `json:"date"`
			MediaName string `json:"mediaName"`
			Content   string `json:"content"`
		} `json:"cmsArticleWebOld"`
	} `json:"result"`
}

// FetchNews searches the article index for the ticker's stock code.
func (e *EastMoney) FetchNews(ctx context.Context, q Query) ([]models.Article, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchParam := fmt.Sprintf(
		`{"uid":"","keyword":"%s","type":["cmsArticleWebOld"],"client":"web","clientType":"web","clientVersion":"curr","param":{"cmsArticleWebOld":{"searchScope":"default","sort":"default","pageIndex":1,"pageSize":%d}}}`,
		BaseTicker(q.Ticker), eastMoneyCap,
	)

	params := url.Values{}
	params.Set("cb", eastMoneyCallback)
	params.Set("param", searchParam)

	body, _, err := infra.DoGet(ctx, eastMoneySearchURL+"?"+params.Encode(), map[string]string{
		"Referer": "https://so.eastmoney.com/",
	})
	if err != nil {
		return nil, fmt.Errorf("eastmoney %s: %w", q.Ticker, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("eastmoney read: %w", err)
	}

	var resp eastMoneyResponse
	if err := json.Unmarshal(stripJSONP(raw), &resp); err != nil {
		return nil, fmt.Errorf("eastmoney parse %s: %w", q.Ticker, err)
	}

	articles := make([]models.Article, 0, len(resp.Result.Articles))
	for _, item := range resp.Result.Articles {
		title := stripEmTags(item.Title)
		if !validTitleCJK(title) {
			continue
		}
		link := item.URL
		if link == "" {
			link = "#"
		}
		src := item.MediaName
		if src == "" {
			src = e.Name()
		}
		articles = append(articles, models.Article{
			Title:     title,
			Link:      link,
			Source:    src,
			Published: parseTimeOrNow(eastMoneyTimeLayout, item.Date),
			Region:    "China (中文)",
			Summary:   models.TruncateSummary(stripEmTags(item.Content)),
		})
	}

	return capArticles(articles, eastMoneyCap), nil
}

// stripJSONP unwraps "callback({...})" padding down to the JSON payload.
func stripJSONP(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	open := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if open < 0 || end <= open {
		return raw
	}
	return []byte(s[open+1 : end])
}

// stripEmTags removes the <em> highlighting East Money injects into hits.
func stripEmTags(s string) string {
	s = strings.ReplaceAll(s, "<em>", "")
	return strings.ReplaceAll(s, "</em>", "")
}
