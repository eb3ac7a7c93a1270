package domain

import (
	"context"
)

// MetadataSource provides paginated listings and detail records
// (implemented by the TMDB client).
type MetadataSource interface {
	// PopularMovies returns one page of currently popular movies
	PopularMovies(ctx context.Context, page int) (ResultPage, error)

	// SearchMovies returns one page of movies whose title matches query
	SearchMovies(ctx context.Context, query string, page int) (ResultPage, error)

	// SearchPeople returns one page of people whose name matches query
	SearchPeople(ctx context.Context, query string, page int) (ResultPage, error)

	// DiscoverByMood returns one page of movies in the mood's categories
	DiscoverByMood(ctx context.Context, mood MoodID, page int) (ResultPage, error)

	// MovieDetail returns the full record for a movie, including videos
	MovieDetail(ctx context.Context, id int) (*MovieDetail, error)

	// PersonDetail returns the full record for a person, including movie credits
	PersonDetail(ctx context.Context, id int) (*PersonDetail, error)
}

// WatchlistStore persists the watchlist as a single ordered collection.
type WatchlistStore interface {
	// Load returns the persisted watchlist. Missing, corrupt, or unreadable
	// data yields an empty list; Load never fails.
	Load() []Movie

	// Save replaces the whole persisted collection atomically
	Save(movies []Movie) error

	Close() error
}
