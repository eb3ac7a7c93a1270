package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
)

// FilterItem represents a searchable item
type FilterItem struct {
	Item  domain.ListItem // *Movie or *Person
	Title string
	Type  domain.MediaType
}

// FilterResult represents a search result with match metadata
type FilterResult struct {
	FilterItem
	Position       int   // index in the unfiltered list
	MatchedIndexes []int // rune positions in Title, for highlighting
	Score          int   // higher is better
}

// FilterIndex implements sahilm/fuzzy.Source over pre-lowered titles
type FilterIndex struct {
	items       []FilterItem
	lowerTitles []string
}

// NewFilterIndex indexes the titles of items
func NewFilterIndex(items []domain.ListItem) *FilterIndex {
	idx := &FilterIndex{
		items:       make([]FilterItem, len(items)),
		lowerTitles: make([]string, len(items)),
	}
	for i, item := range items {
		idx.items[i] = FilterItem{
			Item:  item,
			Title: item.GetTitle(),
			Type:  item.GetMediaType(),
		}
		idx.lowerTitles[i] = strings.ToLower(item.GetTitle())
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *FilterIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *FilterIndex) Len() int { return len(idx.items) }

// Filter returns the items whose title fuzzily matches query, best first.
// An empty query matches nothing.
func (idx *FilterIndex) Filter(query string) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || idx.Len() == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(query, idx)

	results := make([]FilterResult, len(matches))
	for i, match := range matches {
		results[i] = FilterResult{
			FilterItem:     idx.items[match.Index],
			Position:       match.Index,
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}

// FilterItems fuzzily filters the loaded result list by title
func FilterItems(query string, items []domain.ListItem) []FilterResult {
	return NewFilterIndex(items).Filter(query)
}
