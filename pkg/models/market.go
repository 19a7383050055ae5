package models

import "time"

// CompanyProfile holds the subset of company metadata the pipeline needs:
// the display name used to build news search queries, plus listing info
// surfaced by the API layer.
type CompanyProfile struct {
	Ticker    string    `json:"ticker"`
	ShortName string    `json:"short_name"`
	Exchange  string    `json:"exchange,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Quote is a near-real-time price snapshot for a ticker.
type Quote struct {
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name,omitempty"`
	LastPrice float64   `json:"last_price"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_pct"`
	PrevClose float64   `json:"prev_close"`
	Currency  string    `json:"currency,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OHLCV is a single price candle.
type OHLCV struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}
