// Package search filters already-loaded items by title. It never touches the
// remote catalog; remote search goes through the state store.
package search

import (
	"sort"
	"strings"

	typo "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Result is one matching item with match metadata for highlighting
type Result struct {
	Item           domain.Item
	MatchedIndexes []int // Character positions in the title that matched
	Score          int   // Lower is better
}

// titleIndex implements sahilm/fuzzy.Source over lowercase titles
type titleIndex struct {
	items       []domain.Item
	lowerTitles []string
}

func newTitleIndex(items []domain.Item) *titleIndex {
	idx := &titleIndex{
		items:       items,
		lowerTitles: make([]string, len(items)),
	}
	for i, item := range items {
		idx.lowerTitles[i] = strings.ToLower(item.Title)
	}
	return idx
}

func (idx *titleIndex) String(i int) string { return idx.lowerTitles[i] }

func (idx *titleIndex) Len() int { return len(idx.items) }

// Filter returns the items whose title matches query, best match first.
// Subsequence matches come from sahilm/fuzzy; titles that miss but contain a
// word within typo distance of the query are kept with a lower rank.
// A blank query returns every item in its original order.
func Filter(query string, items []domain.Item) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]Result, len(items))
		for i, item := range items {
			results[i] = Result{Item: item}
		}
		return results
	}
	if len(items) == 0 {
		return nil
	}

	idx := newTitleIndex(items)
	matched := make([]bool, len(items))
	var results []Result

	for _, m := range fuzzy.FindFrom(query, idx) {
		matched[m.Index] = true
		results = append(results, Result{
			Item:           items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          matchScore(idx.lowerTitles[m.Index], query),
		})
	}

	maxTypos := allowedTypos(len([]rune(query)))
	if maxTypos > 0 {
		for i, title := range idx.lowerTitles {
			if matched[i] {
				continue
			}
			if dist, ok := closestWord(query, title); ok && dist <= maxTypos {
				results = append(results, Result{
					Item:  items[i],
					Score: 100 + dist*20,
				})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score < results[j].Score
		}
		return len(results[i].Item.Title) < len(results[j].Item.Title)
	})
	return results
}

// matchScore ranks a subsequence match
func matchScore(title, query string) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	default:
		return 80
	}
}

// closestWord returns the smallest Levenshtein distance between query and
// any word of title
func closestWord(query, title string) (int, bool) {
	best, found := 0, false
	for _, word := range strings.Fields(title) {
		dist := typo.LevenshteinDistance(query, word)
		if !found || dist < best {
			best, found = dist, true
		}
	}
	return best, found
}

// allowedTypos: 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}
