package browse

import (
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// Status is the lifecycle of a list or detail stream
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Detail holds whichever full record was fetched last; exactly one of
// Movie and Person is set.
type Detail struct {
	Movie  *domain.MovieDetail
	Person *domain.PersonDetail
}

// Title returns the movie title or person name
func (d *Detail) Title() string {
	switch {
	case d == nil:
		return ""
	case d.Movie != nil:
		return d.Movie.Title
	case d.Person != nil:
		return d.Person.Name
	default:
		return ""
	}
}

// BrowseState is a snapshot of everything the interface renders
type BrowseState struct {
	Mode         domain.BrowseMode
	Items        []domain.ListItem // page-arrival order, not deduplicated
	CurrentPage  int
	TotalPages   int
	TotalResults int
	Status       Status
	Err          string // reason, set when Status is StatusFailed
	LastUpdated  time.Time

	Detail       *Detail
	DetailStatus Status
	DetailErr    string

	Watchlist    []domain.Movie
	WatchlistErr string // last write-through failure, cleared on success
}

// HasMore reports whether pages after CurrentPage exist
func (s BrowseState) HasMore() bool {
	return s.CurrentPage < s.TotalPages
}

// Loading reports whether a list fetch is outstanding
func (s BrowseState) Loading() bool {
	return s.Status == StatusLoading
}

func (s BrowseState) clone() BrowseState {
	c := s
	if s.Items != nil {
		c.Items = append([]domain.ListItem(nil), s.Items...)
	}
	if s.Watchlist != nil {
		c.Watchlist = append([]domain.Movie(nil), s.Watchlist...)
	}
	return c
}
