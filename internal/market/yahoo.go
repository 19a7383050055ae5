// Package market is a thin Yahoo Finance consumer for the layers around the
// news pipeline: company-name resolution for search queries, and price
// history/quotes for the API's chart endpoints.
package market

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lokwah/hknewsdesk/internal/infra"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

const (
	profileTTL = 1 * time.Hour
	historyTTL = 15 * time.Minute
)

// Client fetches company metadata and price data from Yahoo Finance's
// public v1 search and v8 chart APIs. Keyless.
type Client struct {
	cache   *infra.Cache
	limiter *infra.RateLimiter
}

// NewClient creates a Yahoo Finance market-data client.
func NewClient() *Client {
	return &Client{
		cache:   infra.NewCache(historyTTL),
		limiter: infra.NewRateLimiter(5, time.Second),
	}
}

type yfSearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		Industry  string `json:"industry"`
	} `json:"quotes"`
}

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta struct {
		Currency           string  `json:"currency"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		PreviousClose      float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// GetProfile resolves a ticker to its company profile. Callers treat a
// failure as non-fatal and fall back to the raw ticker string.
func (c *Client) GetProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	cacheKey := "profile:" + ticker
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*models.CompanyProfile), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v1/finance/search?q=%s&quotesCount=5&newsCount=0",
		url.QueryEscape(ticker),
	)

	var resp yfSearchResponse
	if err := infra.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("yahoo profile %s: %w", ticker, err)
	}

	for _, q := range resp.Quotes {
		if q.Symbol != ticker {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if name == "" {
			break
		}
		profile := &models.CompanyProfile{
			Ticker:    ticker,
			ShortName: name,
			Exchange:  q.Exchange,
			Industry:  q.Industry,
			FetchedAt: time.Now(),
		}
		c.cache.SetWithTTL(cacheKey, profile, profileTTL)
		return profile, nil
	}

	return nil, fmt.Errorf("yahoo profile %s: no match", ticker)
}

// GetHistory returns daily OHLCV candles for the given lookback window.
func (c *Client) GetHistory(ctx context.Context, ticker string, days int) ([]models.OHLCV, error) {
	if days <= 0 {
		days = 60
	}
	cacheKey := fmt.Sprintf("history:%s:%d", ticker, days)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]models.OHLCV), nil
	}

	result, err := c.fetchChart(ctx, ticker, days)
	if err != nil {
		return nil, err
	}

	candles := parseCandles(*result)
	c.cache.SetWithTTL(cacheKey, candles, historyTTL)
	return candles, nil
}

// GetQuote returns a price snapshot derived from the chart metadata.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	result, err := c.fetchChart(ctx, ticker, 5)
	if err != nil {
		return nil, err
	}

	meta := result.Meta
	quote := &models.Quote{
		Ticker:    ticker,
		LastPrice: meta.RegularMarketPrice,
		PrevClose: meta.PreviousClose,
		Currency:  meta.Currency,
		Timestamp: time.Now(),
	}
	if meta.PreviousClose != 0 {
		quote.Change = meta.RegularMarketPrice - meta.PreviousClose
		quote.ChangePct = quote.Change / meta.PreviousClose * 100
	}
	return quote, nil
}

func (c *Client) fetchChart(ctx context.Context, ticker string, days int) (*yfChartResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	u := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		url.PathEscape(ticker), start.Unix(), end.Unix(),
	)

	var resp yfChartResponse
	if err := infra.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s", ticker, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no data", ticker)
	}
	return &resp.Chart.Result[0], nil
}

// parseCandles converts chart arrays to OHLCV, skipping nil gaps.
func parseCandles(result yfChartResult) []models.OHLCV {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	q := result.Indicators.Quote[0]

	candles := make([]models.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := models.OHLCV{Timestamp: time.Unix(ts, 0)}
		if i < len(q.Open) && q.Open[i] != nil {
			c.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			c.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			c.Low = *q.Low[i]
		}
		if i < len(q.Close) && q.Close[i] != nil {
			c.Close = *q.Close[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			c.Volume = *q.Volume[i]
		}
		candles = append(candles, c)
	}
	return candles
}
