// Package search filters the currently loaded page of books. It never
// re-queries the remote store: the query narrows whatever the catalog view
// already holds.
package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/nkvxness/shelftui/internal/domain"
	"github.com/nkvxness/shelftui/internal/isbn"
)

// Filter returns the books whose title, author, or raw ISBN digit string
// contains query as a case-insensitive substring. An empty query returns
// the input unchanged.
func Filter(books []domain.Book, query string) []domain.Book {
	query = strings.TrimSpace(query)
	if query == "" {
		return books
	}
	q := strings.ToLower(query)

	var out []domain.Book
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(isbn.Normalize(b.ISBN), q) {
			out = append(out, b)
		}
	}
	return out
}

// bookIndex implements sahilm/fuzzy.Source over pre-lowercased keys.
type bookIndex struct {
	keys []string
}

func (ix bookIndex) String(i int) string { return ix.keys[i] }
func (ix bookIndex) Len() int            { return len(ix.keys) }

// FilterFuzzy is the tolerant variant used when fuzzy search is enabled in
// config. Candidates are gathered with normalized fold matching, then
// ordered by fuzzy match score so the closest titles surface first. Still
// scoped to the loaded page.
func FilterFuzzy(books []domain.Book, query string) []domain.Book {
	query = strings.TrimSpace(query)
	if query == "" {
		return books
	}

	var candidates []domain.Book
	var keys []string
	for _, b := range books {
		key := strings.ToLower(b.Title + " " + b.Author)
		if fuzzy.MatchNormalizedFold(query, key) {
			candidates = append(candidates, b)
			keys = append(keys, key)
		}
	}
	if len(candidates) == 0 {
		// Fall back to exact substring semantics so ISBN digit queries
		// still work in fuzzy mode.
		return Filter(books, query)
	}

	matches := sahilm.FindFrom(strings.ToLower(query), bookIndex{keys: keys})
	out := make([]domain.Book, 0, len(matches))
	for _, m := range matches {
		out = append(out, candidates[m.Index])
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}
