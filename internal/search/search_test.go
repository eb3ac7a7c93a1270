package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
)

func items() []domain.ListItem {
	return []domain.ListItem{
		&domain.Movie{ID: 1, Title: "The Dark Knight"},
		&domain.Movie{ID: 2, Title: "Inception"},
		&domain.Movie{ID: 3, Title: "Interstellar"},
		&domain.Person{ID: 4, Name: "Christopher Nolan"},
	}
}

func TestFilterItems(t *testing.T) {
	results := FilterItems("inter", items())
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Item.GetID())
	assert.Equal(t, 2, results[0].Position)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, results[0].MatchedIndexes)
}

func TestFilterItemsIsCaseInsensitive(t *testing.T) {
	results := FilterItems("NOLAN", items())
	require.Len(t, results, 1)
	assert.Equal(t, domain.MediaTypePerson, results[0].Type)
	assert.Equal(t, "Christopher Nolan", results[0].Title)
}

func TestFilterItemsFuzzy(t *testing.T) {
	results := FilterItems("dkn", items())
	require.NotEmpty(t, results)
	assert.Equal(t, 1, results[0].Item.GetID())
}

func TestFilterItemsEmptyQuery(t *testing.T) {
	assert.Nil(t, FilterItems("", items()))
	assert.Nil(t, FilterItems("   ", items()))
	assert.Nil(t, FilterItems("x", nil))
}

func TestRankWatchlist(t *testing.T) {
	watchlist := []domain.Movie{
		{ID: 1, Title: "Alien"},
		{ID: 2, Title: "Aliens"},
		{ID: 3, Title: "Blade Runner"},
		{ID: 4, Title: "Alien: Covenant"},
	}

	got := RankWatchlist("alien", watchlist)
	ids := make([]int, len(got))
	for i, m := range got {
		ids[i] = m.ID
	}
	assert.Equal(t, []int{1, 2, 4}, ids)
}

func TestRankWatchlistEmptyQuery(t *testing.T) {
	watchlist := []domain.Movie{{ID: 1, Title: "Alien"}, {ID: 2, Title: "Heat"}}
	assert.Equal(t, watchlist, RankWatchlist("", watchlist))
}

func TestRankWatchlistNoMatch(t *testing.T) {
	watchlist := []domain.Movie{{ID: 1, Title: "Alien"}}
	assert.Empty(t, RankWatchlist("zzz", watchlist))
}
