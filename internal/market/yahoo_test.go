package market

import (
	"testing"
	"time"
)

func fp(v float64) *float64 { return &v }
func ip(v int64) *int64     { return &v }

func TestParseCandles(t *testing.T) {
	var result yfChartResult
	result.Timestamp = []int64{1700000000, 1700086400}
	result.Indicators.Quote = []struct {
		Open   []*float64 `json:"open"`
		High   []*float64 `json:"high"`
		Low    []*float64 `json:"low"`
		Close  []*float64 `json:"close"`
		Volume []*int64   `json:"volume"`
	}{{
		Open:   []*float64{fp(320.0), fp(322.5)},
		High:   []*float64{fp(325.0), fp(326.0)},
		Low:    []*float64{fp(318.0), fp(321.0)},
		Close:  []*float64{fp(324.0), fp(325.5)},
		Volume: []*int64{ip(1000000), ip(900000)},
	}}

	candles := parseCandles(result)
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2", len(candles))
	}
	if !candles[0].Timestamp.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("timestamp = %v", candles[0].Timestamp)
	}
	if candles[0].Open != 320.0 || candles[1].Close != 325.5 {
		t.Errorf("unexpected OHLC values: %+v", candles)
	}
	if candles[0].Volume != 1000000 {
		t.Errorf("volume = %d", candles[0].Volume)
	}
}

func TestParseCandlesNilGaps(t *testing.T) {
	// Yahoo leaves nil holes for halted sessions; the candle is kept with
	// zero values rather than dropped.
	var result yfChartResult
	result.Timestamp = []int64{1700000000}
	result.Indicators.Quote = []struct {
		Open   []*float64 `json:"open"`
		High   []*float64 `json:"high"`
		Low    []*float64 `json:"low"`
		Close  []*float64 `json:"close"`
		Volume []*int64   `json:"volume"`
	}{{
		Open:   []*float64{nil},
		High:   []*float64{nil},
		Low:    []*float64{nil},
		Close:  []*float64{fp(100.0)},
		Volume: []*int64{nil},
	}}

	candles := parseCandles(result)
	if len(candles) != 1 {
		t.Fatalf("got %d candles, want 1", len(candles))
	}
	if candles[0].Open != 0 || candles[0].Close != 100.0 {
		t.Errorf("unexpected values: %+v", candles[0])
	}
}

func TestParseCandlesEmpty(t *testing.T) {
	var result yfChartResult
	if candles := parseCandles(result); candles != nil {
		t.Fatalf("got %v, want nil for empty quote block", candles)
	}
}
