// Package source implements the upstream news providers. Each adapter maps
// one provider's response shape onto the canonical models.Article and applies
// the shared normalization rules: per-call timeout, item cap, title gate,
// timestamp fallback, region derivation, summary truncation.
//
// Adapters return errors; they never log and never retry. The aggregator is
// the single boundary that collapses a failed adapter to an empty result.
package source

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lokwah/hknewsdesk/pkg/models"
)

// Query carries the per-ticker request parameters into an adapter.
type Query struct {
	Ticker  string // exchange-qualified symbol, e.g. "0700.HK"
	Company string // resolved display name; falls back to the raw ticker
	Days    int    // lookback window for date-ranged providers
}

// Source is the contract every news adapter implements. FetchNews returns
// the normalized articles or an error; it must be safe for concurrent use.
type Source interface {
	Name() string
	FetchNews(ctx context.Context, q Query) ([]models.Article, error)
}

// DefaultLookbackDays is used when a Query leaves Days zero.
const DefaultLookbackDays = 7

// minTitleRunes is the default title gate: records with shorter titles are
// dropped at the adapter boundary. Chinese-language adapters use
// minTitleRunesCJK since CJK headlines pack more meaning per rune.
const (
	minTitleRunes    = 5
	minTitleRunesCJK = 2
)

// validTitle reports whether a title passes the default gate.
func validTitle(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) > minTitleRunes
}

// validTitleCJK reports whether a title passes the relaxed CJK gate.
func validTitleCJK(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) > minTitleRunesCJK
}

// --- Ticker heuristics ---

// greaterChinaSuffixes are the exchange suffixes for Hong Kong, Shanghai,
// and Shenzhen listings.
var greaterChinaSuffixes = []string{".HK", ".SS", ".SZ"}

// IsGreaterChina reports whether the ticker is an HK/Shanghai/Shenzhen listing.
func IsGreaterChina(ticker string) bool {
	upper := strings.ToUpper(ticker)
	for _, sfx := range greaterChinaSuffixes {
		if strings.HasSuffix(upper, sfx) {
			return true
		}
	}
	return false
}

// BaseTicker strips the exchange suffix: "0700.HK" → "0700".
func BaseTicker(ticker string) string {
	upper := strings.ToUpper(ticker)
	for _, sfx := range greaterChinaSuffixes {
		if strings.HasSuffix(upper, sfx) {
			return ticker[:len(ticker)-len(sfx)]
		}
	}
	return ticker
}

// regionForTicker derives a region tag from the ticker suffix alone.
func regionForTicker(ticker string) string {
	if strings.Contains(strings.ToUpper(ticker), ".HK") {
		return "Hong Kong"
	}
	return "Global"
}

// regionFromTitle derives a region tag from title keywords, falling back
// to "Global". Used by providers whose feeds mix markets.
func regionFromTitle(title string) string {
	for _, kw := range []string{"Hong Kong", "香港", "HK"} {
		if strings.Contains(title, kw) {
			return "Hong Kong"
		}
	}
	for _, kw := range []string{"China", "中国", "Chinese"} {
		if strings.Contains(title, kw) {
			return "China"
		}
	}
	return "Global"
}

// --- Timestamp normalization ---

// unixOrNow converts epoch seconds to a time, substituting fetch-time for
// zero or negative values. Degraded precision is preferred over dropping
// the record.
func unixOrNow(sec int64) time.Time {
	if sec <= 0 {
		return time.Now()
	}
	return time.Unix(sec, 0)
}

// parseTimeOrNow parses value with the given layout, substituting fetch-time
// on failure.
func parseTimeOrNow(layout, value string) time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Now()
	}
	return t
}

// capArticles bounds a result slice to the provider's record cap.
func capArticles(articles []models.Article, n int) []models.Article {
	if len(articles) > n {
		return articles[:n]
	}
	return articles
}

// lookbackDays normalizes the Days field of a Query.
func lookbackDays(q Query) int {
	if q.Days <= 0 {
		return DefaultLookbackDays
	}
	return q.Days
}
