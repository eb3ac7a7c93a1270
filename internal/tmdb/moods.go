package tmdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

// TMDB genre ids used by the mood presets
const (
	GenreAction    = 28
	GenreAdventure = 12
	GenreComedy    = 35
	GenreFamily    = 10751
	GenreMystery   = 9648
	GenreThriller  = 53
)

// moodGenres is the static mood → category mapping
var moodGenres = map[domain.MoodID][]int{
	domain.MoodFeelGood:    {GenreComedy, GenreFamily},
	domain.MoodActionFix:   {GenreAction, GenreAdventure},
	domain.MoodMindBenders: {GenreMystery, GenreThriller},
}

// MoodGenres returns the genre ids a mood discovers, or nil for an unknown mood
func MoodGenres(mood domain.MoodID) []int {
	return moodGenres[mood]
}

// joinGenres formats ids for with_genres ("35,10751" = comedy AND family)
func joinGenres(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
