// Package models defines the shared value types exchanged between the
// news pipeline, the market-data consumer, and the API layer.
package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// SummaryMaxRunes caps article summaries at construction time.
const SummaryMaxRunes = 200

// dedupKeyRunes is the length of the lowercased title prefix used as the
// identity for cross-source duplicate detection.
const dedupKeyRunes = 60

// Article is the canonical news record. Every source adapter normalizes its
// provider-specific shape into this type; an Article is immutable once built.
type Article struct {
	Title      string    `json:"title"`
	Link       string    `json:"link"`   // "#" when the provider gave no URL
	Source     string    `json:"source"` // human-readable provider name
	Published  time.Time `json:"published"`
	Keywords   []string  `json:"keywords,omitempty"`
	Region     string    `json:"region"` // free-text tag, e.g. "Hong Kong", "China (中文)"
	Summary    string    `json:"summary,omitempty"`
	Industries []string  `json:"industries,omitempty"` // classifier output, ["General"] fallback
}

// DedupKey returns the identity used for duplicate detection: the lowercased,
// whitespace-trimmed title truncated to 60 runes. Sources free-text their
// titles, so a length-bounded prefix absorbs trailing attribution noise
// ("… - Reuters" vs "… | SCMP").
func (a Article) DedupKey() string {
	return TruncateRunes(strings.ToLower(strings.TrimSpace(a.Title)), dedupKeyRunes)
}

// TruncateRunes shortens s to at most n runes. Truncation is rune-based so
// CJK titles are never cut mid-character.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// TruncateSummary applies the canonical 200-rune summary cap.
func TruncateSummary(s string) string {
	return TruncateRunes(s, SummaryMaxRunes)
}
