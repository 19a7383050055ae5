package source

import (
	"testing"
	"time"

	"github.com/lokwah/hknewsdesk/pkg/models"
)

func TestIsGreaterChina(t *testing.T) {
	tests := []struct {
		ticker string
		want   bool
	}{
		{"0700.HK", true},
		{"0700.hk", true},
		{"600519.SS", true},
		{"000001.SZ", true},
		{"AAPL", false},
		{"BABA", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsGreaterChina(tt.ticker); got != tt.want {
			t.Errorf("IsGreaterChina(%q) = %v, want %v", tt.ticker, got, tt.want)
		}
	}
}

func TestBaseTicker(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"0700.HK", "0700"},
		{"600519.SS", "600519"},
		{"000001.SZ", "000001"},
		{"AAPL", "AAPL"},
	}

	for _, tt := range tests {
		if got := BaseTicker(tt.ticker); got != tt.want {
			t.Errorf("BaseTicker(%q) = %q, want %q", tt.ticker, got, tt.want)
		}
	}
}

func TestRegionForTicker(t *testing.T) {
	if got := regionForTicker("0700.HK"); got != "Hong Kong" {
		t.Errorf("got %q, want Hong Kong", got)
	}
	if got := regionForTicker("AAPL"); got != "Global" {
		t.Errorf("got %q, want Global", got)
	}
}

func TestRegionFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hong Kong stocks rally", "Hong Kong"},
		{"香港恒生指数收涨", "Hong Kong"},
		{"China exports rebound", "China"},
		{"中国经济数据公布", "China"},
		{"Fed holds rates steady", "Global"},
	}

	for _, tt := range tests {
		if got := regionFromTitle(tt.title); got != tt.want {
			t.Errorf("regionFromTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestValidTitleGates(t *testing.T) {
	// Default gate: more than 5 runes.
	if validTitle("short") {
		t.Error("5-rune title must fail the default gate")
	}
	if !validTitle("longer title") {
		t.Error("expected pass for 12-rune title")
	}
	if validTitle("   ab   ") {
		t.Error("whitespace must not count toward the gate")
	}

	// CJK gate: more than 2 runes.
	if validTitleCJK("恒指") {
		t.Error("2-rune CJK title must fail the relaxed gate")
	}
	if !validTitleCJK("恒指涨") {
		t.Error("expected pass for 3-rune CJK title")
	}
}

func TestUnixOrNow(t *testing.T) {
	if got := unixOrNow(1700000000); !got.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("got %v, want epoch 1700000000", got)
	}

	// Zero and negative epochs fall back to roughly fetch-time.
	for _, sec := range []int64{0, -5} {
		got := unixOrNow(sec)
		if time.Since(got) > time.Minute {
			t.Errorf("unixOrNow(%d) = %v, want approximately now", sec, got)
		}
	}
}

func TestParseTimeOrNow(t *testing.T) {
	got := parseTimeOrNow("2006-01-02 15:04:05", "2024-03-15 09:30:00")
	want := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Unparseable input degrades to fetch-time; the record is kept.
	got = parseTimeOrNow(time.RFC3339, "not-a-timestamp")
	if time.Since(got) > time.Minute {
		t.Errorf("got %v, want approximately now", got)
	}
}

func TestCapArticles(t *testing.T) {
	articles := make([]models.Article, 20)
	if got := capArticles(articles, 15); len(got) != 15 {
		t.Fatalf("got %d articles, want 15", len(got))
	}
	if got := capArticles(articles, 50); len(got) != 20 {
		t.Fatalf("got %d articles, want 20 (no padding)", len(got))
	}
}

func TestLookbackDays(t *testing.T) {
	if got := lookbackDays(Query{Days: 3}); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if got := lookbackDays(Query{}); got != DefaultLookbackDays {
		t.Errorf("got %d, want default %d", got, DefaultLookbackDays)
	}
	if got := lookbackDays(Query{Days: -1}); got != DefaultLookbackDays {
		t.Errorf("got %d, want default %d", got, DefaultLookbackDays)
	}
}

func TestNewsAPIQueryBuilding(t *testing.T) {
	s := NewNewsAPI("test-key")

	// Greater-China listings get the market context clause.
	q := s.buildQuery(Query{Ticker: "0700.HK", Company: "Tencent"})
	if q != `(Tencent OR 0700) AND (Hong Kong OR 香港 OR China OR 中国)` {
		t.Errorf("unexpected query: %q", q)
	}

	// Non-GC tickers stay plain.
	q = s.buildQuery(Query{Ticker: "AAPL", Company: "Apple"})
	if q != "Apple OR AAPL" {
		t.Errorf("unexpected query: %q", q)
	}

	// Company equal to the ticker is not repeated.
	q = s.buildQuery(Query{Ticker: "AAPL", Company: "AAPL"})
	if q != "AAPL" {
		t.Errorf("unexpected query: %q", q)
	}
}

func TestStripJSONP(t *testing.T) {
	raw := `jQuery123({"Data":[1,2]})`
	if got := stripJSONP([]byte(raw)); string(got) != `{"Data":[1,2]}` {
		t.Fatalf("got %q", got)
	}

	// Non-JSONP payloads pass through untouched.
	if got := stripJSONP([]byte("plain body")); string(got) != "plain body" {
		t.Fatalf("got %q", got)
	}
}

func TestStripEmTags(t *testing.T) {
	got := stripEmTags("<em>腾讯</em>控股发布<em>财报</em>")
	if got != "腾讯控股发布财报" {
		t.Fatalf("got %q", got)
	}
}
