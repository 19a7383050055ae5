package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lokwah/hknewsdesk/internal/infra"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

const (
	sinaRollURL = "https://finance.sina.com.cn/roll/index.d.html"
	sinaCap     = 5
)

// sinaMarketKeywords admit headlines about the broader market even when the
// queried stock code is absent.
var sinaMarketKeywords = []string{"股", "市", "港股", "投资"}

// Sina scrapes the Sina Finance (新浪财经) news roll. Structure-fragile by
// contract: the roll page has no stable markup, so anchors are filtered by
// the stock code or Chinese market keywords, and any shape mismatch simply
// yields fewer (or zero) articles. The roll carries no per-item timestamps;
// articles are stamped with fetch-time.
type Sina struct {
	limiter *infra.RateLimiter
}

// NewSina creates the Sina Finance adapter.
func NewSina() *Sina {
	return &Sina{
		limiter: infra.NewRateLimiter(1, time.Second),
	}
}

// Name returns the provider name.
func (s *Sina) Name() string { return "新浪财经" }

// FetchNews scrapes the news roll for headlines mentioning the ticker's
// stock code or general market terms.
func (s *Sina) FetchNews(ctx context.Context, q Query) ([]models.Article, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, _, err := infra.DoGet(ctx, sinaRollURL, map[string]string{"Accept": "text/html"})
	if err != nil {
		return nil, fmt.Errorf("sina finance: %w", err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse sina HTML: %w", err)
	}

	stockCode := strings.TrimLeft(BaseTicker(q.Ticker), "0")

	var articles []models.Article
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		href, _ := sel.Attr("href")

		if !validTitle(title) || !sinaRelevant(title, stockCode) {
			return true
		}
		if !strings.HasPrefix(href, "http") {
			href = "https://finance.sina.com.cn" + href
		}

		articles = append(articles, models.Article{
			Title:     title,
			Link:      href,
			Source:    s.Name(),
			Published: time.Now(),
			Region:    "China (中文)",
		})
		return len(articles) < sinaCap
	})

	return articles, nil
}

func sinaRelevant(title, stockCode string) bool {
	if stockCode != "" && strings.Contains(title, stockCode) {
		return true
	}
	for _, kw := range sinaMarketKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
