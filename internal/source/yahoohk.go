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

const yahooHKCap = 10

// YahooHK scrapes Chinese-language headlines from the Yahoo Finance Hong
// Kong quote page. Headline nodes are h3 elements wrapped in anchors; the
// page carries no per-item timestamps, so articles are stamped with
// fetch-time. Structure-fragile by contract.
type YahooHK struct {
	limiter *infra.RateLimiter
}

// NewYahooHK creates the Yahoo Finance HK adapter.
func NewYahooHK() *YahooHK {
	return &YahooHK{
		limiter: infra.NewRateLimiter(2, time.Second),
	}
}

// Name returns the provider name.
func (y *YahooHK) Name() string { return "Yahoo財經 (HK)" }

// FetchNews scrapes the HK quote page for the ticker's stock code.
func (y *YahooHK) FetchNews(ctx context.Context, q Query) ([]models.Article, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("https://hk.finance.yahoo.com/quote/%s.HK", BaseTicker(q.Ticker))
	body, _, err := infra.DoGet(ctx, u, map[string]string{
		"Accept":          "text/html",
		"Accept-Language": "zh-HK,zh;q=0.9",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo hk %s: %w", q.Ticker, err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse yahoo hk HTML: %w", err)
	}

	var articles []models.Article
	doc.Find("h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		anchor := sel.Closest("a")
		if !validTitle(title) || anchor.Length() == 0 {
			return true
		}

		href, _ := anchor.Attr("href")
		if href == "" {
			return true
		}
		if strings.HasPrefix(href, "/") {
			href = "https://hk.finance.yahoo.com" + href
		}

		articles = append(articles, models.Article{
			Title:     title,
			Link:      href,
			Source:    y.Name(),
			Published: time.Now(),
			Region:    "Hong Kong (中文)",
		})
		return len(articles) < yahooHKCap
	})

	return articles, nil
}
