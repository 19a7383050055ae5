package news

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lokwah/hknewsdesk/pkg/models"
)

// dedupe removes title duplicates from a merged pool. Identity is the
// 60-rune lowercased title prefix; the first occurrence wins, so callers
// must concatenate source results in priority order before deduplicating.
// Entries whose trimmed titles are minTitleRunes or shorter are dropped.
func dedupe(articles []models.Article, minTitleRunes int) []models.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]models.Article, 0, len(articles))

	for _, a := range articles {
		if utf8.RuneCountInString(strings.TrimSpace(a.Title)) <= minTitleRunes {
			continue
		}
		key := a.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, a)
	}

	return unique
}

// sortByPublished orders articles newest first. The sort is stable so
// same-timestamp articles keep their source-priority order.
func sortByPublished(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
}

// truncate bounds the pool size after sorting.
func truncate(articles []models.Article, n int) []models.Article {
	if len(articles) > n {
		return articles[:n]
	}
	return articles
}
