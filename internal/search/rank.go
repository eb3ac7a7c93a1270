package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
)

// RankWatchlist returns the watchlist entries whose title contains the
// query's characters in order (case-insensitive), closest match first.
// Entries with equal distance keep their watchlist order. An empty
// query returns every entry unchanged.
func RankWatchlist(query string, movies []domain.Movie) []domain.Movie {
	query = strings.TrimSpace(query)
	if query == "" {
		return movies
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)

	// Sort by distance (lower is better)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	results := make([]domain.Movie, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, movies[r.OriginalIndex])
	}
	return results
}
