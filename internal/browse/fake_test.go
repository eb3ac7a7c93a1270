package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
)

// fakeSource serves scripted pages keyed by mode and page number
type fakeSource struct {
	mu     sync.Mutex
	pages  map[string]domain.ResultPage
	errs   map[string]error
	movies map[int]*domain.MovieDetail
	people map[int]*domain.PersonDetail
	calls  []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:  make(map[string]domain.ResultPage),
		errs:   make(map[string]error),
		movies: make(map[int]*domain.MovieDetail),
		people: make(map[int]*domain.PersonDetail),
	}
}

func pageKey(mode domain.BrowseMode, page int) string {
	return fmt.Sprintf("%s#%d", mode, page)
}

func (f *fakeSource) setPage(mode domain.BrowseMode, page, totalPages int, items ...domain.ListItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[pageKey(mode, page)] = domain.ResultPage{
		Items:        items,
		Page:         page,
		TotalPages:   totalPages,
		TotalResults: totalPages * 20,
	}
	delete(f.errs, pageKey(mode, page))
}

func (f *fakeSource) failPage(mode domain.BrowseMode, page int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[pageKey(mode, page)] = err
}

func (f *fakeSource) serve(mode domain.BrowseMode, page int) (domain.ResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pageKey(mode, page)
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return domain.ResultPage{}, err
	}
	if p, ok := f.pages[key]; ok {
		return p, nil
	}
	return domain.ResultPage{Page: page, TotalPages: page}, nil
}

func (f *fakeSource) PopularMovies(_ context.Context, page int) (domain.ResultPage, error) {
	return f.serve(domain.Popular(), page)
}

func (f *fakeSource) SearchMovies(_ context.Context, query string, page int) (domain.ResultPage, error) {
	return f.serve(domain.SearchByTitle(query), page)
}

func (f *fakeSource) SearchPeople(_ context.Context, query string, page int) (domain.ResultPage, error) {
	return f.serve(domain.SearchByPerson(query), page)
}

func (f *fakeSource) DiscoverByMood(_ context.Context, mood domain.MoodID, page int) (domain.ResultPage, error) {
	return f.serve(domain.Mood(mood), page)
}

func (f *fakeSource) MovieDetail(_ context.Context, id int) (*domain.MovieDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.movies[id]; ok {
		return d, nil
	}
	return nil, &domain.ServerError{Status: 404, Message: "The resource you requested could not be found."}
}

func (f *fakeSource) PersonDetail(_ context.Context, id int) (*domain.PersonDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.people[id]; ok {
		return d, nil
	}
	return nil, &domain.ServerError{Status: 404}
}

// memStore is an in-memory domain.WatchlistStore with an injectable failure
type memStore struct {
	mu      sync.Mutex
	movies  []domain.Movie
	saves   int
	failErr error
}

func (s *memStore) Load() []domain.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Movie{}, s.movies...)
}

func (s *memStore) Save(movies []domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.failErr != nil {
		return s.failErr
	}
	s.movies = append([]domain.Movie{}, movies...)
	return nil
}

func (s *memStore) Close() error { return nil }

var errDiskFull = errors.New("disk full")

func movie(id int, title string) *domain.Movie {
	return &domain.Movie{ID: id, Title: title}
}

func person(id int, name string) *domain.Person {
	return &domain.Person{ID: id, Name: name}
}

// run executes a command synchronously and returns its message
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func itemIDs(items []domain.ListItem) []int {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.GetID()
	}
	return ids
}

func watchlistIDs(movies []domain.Movie) []int {
	ids := make([]int, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}
