package models

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDedupKeyLowercasesAndTrims(t *testing.T) {
	a := Article{Title: "  Tencent Beats Estimates  "}
	if got := a.DedupKey(); got != "tencent beats estimates" {
		t.Fatalf("got %q", got)
	}
}

func TestDedupKeyTruncatesTo60Runes(t *testing.T) {
	a := Article{Title: strings.Repeat("x", 100)}
	if got := a.DedupKey(); utf8.RuneCountInString(got) != 60 {
		t.Fatalf("key length %d, want 60", utf8.RuneCountInString(got))
	}
}

func TestDedupKeyIgnoresTrailingAttribution(t *testing.T) {
	base := strings.Repeat("a", 60)
	a := Article{Title: base + " - Reuters"}
	b := Article{Title: base + " | SCMP"}
	if a.DedupKey() != b.DedupKey() {
		t.Fatal("expected identical keys for same 60-rune prefix")
	}
}

func TestTruncateRunesCJKSafe(t *testing.T) {
	s := "腾讯控股第三季度业绩超预期"
	got := TruncateRunes(s, 4)
	if got != "腾讯控股" {
		t.Fatalf("got %q, want 腾讯控股", got)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncation produced invalid UTF-8")
	}
}

func TestTruncateRunesShortInput(t *testing.T) {
	if got := TruncateRunes("short", 60); got != "short" {
		t.Fatalf("got %q, want unchanged input", got)
	}
}

func TestTruncateSummary(t *testing.T) {
	long := strings.Repeat("字", 300)
	got := TruncateSummary(long)
	if utf8.RuneCountInString(got) != SummaryMaxRunes {
		t.Fatalf("summary length %d, want %d", utf8.RuneCountInString(got), SummaryMaxRunes)
	}
}
