package news

import (
	"strings"

	"github.com/lokwah/hknewsdesk/internal/source"
	"github.com/lokwah/hknewsdesk/pkg/models"
)

// TickerNews filters an already-aggregated pool down to the articles
// relevant to one ticker. Pure and synchronous: no network access, no
// re-fetch. Relevance is heuristic — the ticker or its suffix-stripped base
// appearing in the link or title, or the raw ticker appearing among the
// keywords — so false negatives are expected and accepted.
func TickerNews(ticker string, pool []models.Article) []models.Article {
	tickerLower := strings.ToLower(ticker)
	baseLower := strings.ToLower(source.BaseTicker(ticker))

	var relevant []models.Article
	for _, a := range pool {
		titleLower := strings.ToLower(a.Title)
		linkLower := strings.ToLower(a.Link)

		switch {
		case strings.Contains(linkLower, tickerLower),
			strings.Contains(linkLower, baseLower),
			strings.Contains(titleLower, tickerLower),
			strings.Contains(titleLower, baseLower),
			keywordsContain(a.Keywords, ticker):
			relevant = append(relevant, a)
		}
	}
	return relevant
}

// keywordsContain reports whether the raw ticker appears in the keyword
// list's joined string form (substring match, mirroring the loose matching
// used elsewhere in the pipeline).
func keywordsContain(keywords []string, ticker string) bool {
	if len(keywords) == 0 {
		return false
	}
	return strings.Contains(strings.Join(keywords, ","), ticker)
}
