package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
)

// stubSource serves scripted pages keyed by mode and page number
type stubSource struct {
	mu     sync.Mutex
	pages  map[string]domain.ResultPage
	errs   map[string]error
	movies map[int]*domain.MovieDetail
}

func newStubSource() *stubSource {
	return &stubSource{
		pages:  make(map[string]domain.ResultPage),
		errs:   make(map[string]error),
		movies: make(map[int]*domain.MovieDetail),
	}
}

func stubKey(mode domain.BrowseMode, page int) string {
	return fmt.Sprintf("%s#%d", mode, page)
}

func (s *stubSource) setPage(mode domain.BrowseMode, page, totalPages int, items ...domain.ListItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[stubKey(mode, page)] = domain.ResultPage{Items: items, Page: page, TotalPages: totalPages, TotalResults: len(items) * totalPages}
	delete(s.errs, stubKey(mode, page))
}

func (s *stubSource) failPage(mode domain.BrowseMode, page int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[stubKey(mode, page)] = err
}

func (s *stubSource) serve(mode domain.BrowseMode, page int) (domain.ResultPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.errs[stubKey(mode, page)]; ok {
		return domain.ResultPage{}, err
	}
	if p, ok := s.pages[stubKey(mode, page)]; ok {
		return p, nil
	}
	return domain.ResultPage{Page: page, TotalPages: page}, nil
}

func (s *stubSource) PopularMovies(_ context.Context, page int) (domain.ResultPage, error) {
	return s.serve(domain.Popular(), page)
}

func (s *stubSource) SearchMovies(_ context.Context, query string, page int) (domain.ResultPage, error) {
	return s.serve(domain.SearchByTitle(query), page)
}

func (s *stubSource) SearchPeople(_ context.Context, query string, page int) (domain.ResultPage, error) {
	return s.serve(domain.SearchByPerson(query), page)
}

func (s *stubSource) DiscoverByMood(_ context.Context, mood domain.MoodID, page int) (domain.ResultPage, error) {
	return s.serve(domain.Mood(mood), page)
}

func (s *stubSource) MovieDetail(_ context.Context, id int) (*domain.MovieDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.movies[id]; ok {
		return d, nil
	}
	return nil, &domain.ServerError{Status: 404}
}

func (s *stubSource) PersonDetail(_ context.Context, id int) (*domain.PersonDetail, error) {
	return &domain.PersonDetail{Person: domain.Person{ID: id, Name: "Someone"}}, nil
}

// recordingLauncher captures the URLs it is asked to open
type recordingLauncher struct {
	played []string
	opened []string
}

func (l *recordingLauncher) PlayTrailer(url string) error {
	if url == "" {
		return adapter.ErrNoURL
	}
	l.played = append(l.played, url)
	return nil
}

func (l *recordingLauncher) OpenURL(url string) error {
	l.opened = append(l.opened, url)
	return nil
}

func newTestModel(t *testing.T, infinite bool) (Model, *stubSource, *recordingLauncher) {
	t.Helper()

	source := newStubSource()
	watchlist, err := store.NewWatchlistStore("", adapter.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { watchlist.Close() })

	launcher := &recordingLauncher{}
	manager := browse.NewManager(source, watchlist, adapter.NullLogger())
	m := NewModel(manager, launcher, Options{
		InfiniteScroll: infinite,
		StatusTimeout:  time.Millisecond,
		Logger:         adapter.NullLogger(),
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, source, launcher
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and then every message its command produces, depth first.
// Status-clearing ticks are dropped so assertions can see the status line.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	for _, out := range drain(cmd) {
		if _, ok := out.(ClearStatusMsg); ok {
			continue
		}
		model = send(t, model, out)
	}
	return model
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyPress(k))
	}
	return m
}

// typeText feeds runes to a focused text input without running its blink commands
func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func titles(items []domain.ListItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.GetTitle()
	}
	return out
}

func movie(id int, title string) *domain.Movie {
	return &domain.Movie{ID: id, Title: title}
}

func TestPopularKeyLoadsFirstPage(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 3, movie(1, "Dune"), movie(2, "Heat"))

	m = press(t, m, "p")

	st := m.Manager.State()
	assert.Equal(t, browse.StatusReady, st.Status)
	assert.Equal(t, []string{"Dune", "Heat"}, titles(m.Results.Items()))
	assert.Equal(t, "Popular Movies", m.Results.Title())
	assert.Contains(t, m.View(), "page 1/3")
}

func TestMoodKeysSwitchMode(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Mood(domain.MoodActionFix), 1, 1, movie(10, "Heat"))
	source.setPage(domain.Mood(domain.MoodMindBenders), 1, 1, movie(20, "Primer"))

	m = press(t, m, "2")
	assert.Equal(t, "Action Fix Movies", m.Results.Title())
	assert.Equal(t, []string{"Heat"}, titles(m.Results.Items()))

	m = press(t, m, "3")
	assert.Equal(t, "Mind Benders Movies", m.Results.Title())
	assert.Equal(t, []string{"Primer"}, titles(m.Results.Items()))
}

func TestTitleSearchPrompt(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.SearchByTitle("alien"), 1, 1, movie(348, "Alien"), movie(679, "Aliens"))

	m = press(t, m, "/")
	require.True(t, m.InputModal.IsVisible())

	m = typeText(t, m, "alien")
	m = press(t, m, "enter")

	assert.False(t, m.InputModal.IsVisible())
	assert.Equal(t, domain.SearchByTitle("alien"), m.Manager.State().Mode)
	assert.Equal(t, []string{"Alien", "Aliens"}, titles(m.Results.Items()))
	assert.Equal(t, `Search Results for "alien"`, m.Results.Title())
}

func TestPersonSearchListsPeople(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.SearchByPerson("nolan"), 1, 1, &domain.Person{ID: 525, Name: "Christopher Nolan"})

	m = press(t, m, "@")
	m = typeText(t, m, "nolan")
	m = press(t, m, "enter")

	items := m.Results.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.MediaTypePerson, items[0].GetMediaType())
}

func TestEmptySearchStaysIdle(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	m = press(t, m, "/", "enter")

	st := m.Manager.State()
	assert.Equal(t, browse.StatusIdle, st.Status)
	assert.Empty(t, m.Results.Items())
	assert.Contains(t, m.View(), "Press / to search")
}

func TestInfiniteScrollLoadsNextPage(t *testing.T) {
	m, source, _ := newTestModel(t, true)
	source.setPage(domain.Popular(), 1, 2, movie(1, "A"), movie(2, "B"))
	source.setPage(domain.Popular(), 2, 2, movie(3, "C"), movie(4, "D"))

	m = press(t, m, "p")
	require.Len(t, m.Results.Items(), 2)

	// Moving onto the last row pulls in page 2, keeping the cursor in place
	m = press(t, m, "j")

	st := m.Manager.State()
	assert.Equal(t, 2, st.CurrentPage)
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(m.Results.Items()))
	assert.Equal(t, 1, m.Results.SelectedIndex())

	// No page 3 exists
	m = press(t, m, "G")
	assert.Equal(t, 2, m.Manager.State().CurrentPage)
}

func TestInfiniteScrollDisabled(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 2, movie(1, "A"), movie(2, "B"))
	source.setPage(domain.Popular(), 2, 2, movie(3, "C"))

	m = press(t, m, "p", "G")
	assert.Equal(t, 1, m.Manager.State().CurrentPage)

	m = press(t, m, "]")
	assert.Equal(t, 2, m.Manager.State().CurrentPage)
	assert.Len(t, m.Results.Items(), 3)

	// No further pages
	m = press(t, m, "]")
	assert.Equal(t, 2, m.Manager.State().CurrentPage)

	m = press(t, m, "[")
	assert.Equal(t, 1, m.Manager.State().CurrentPage)
	assert.Len(t, m.Results.Items(), 2)
}

func TestFailureShowsRetryHint(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.failPage(domain.Popular(), 1, &domain.ServerError{Status: 503})

	m = press(t, m, "p")

	st := m.Manager.State()
	require.Equal(t, browse.StatusFailed, st.Status)
	view := m.View()
	assert.Contains(t, view, "Server error (HTTP 503)")
	assert.Contains(t, view, "to retry")

	source.setPage(domain.Popular(), 1, 1, movie(1, "Dune"))
	m = press(t, m, "r")

	assert.Equal(t, browse.StatusReady, m.Manager.State().Status)
	assert.Equal(t, []string{"Dune"}, titles(m.Results.Items()))
}

func TestBackResetsToPopular(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Mood(domain.MoodFeelGood), 1, 1, movie(1, "Paddington"))
	source.setPage(domain.Popular(), 1, 1, movie(2, "Dune"))

	m = press(t, m, "1")
	require.Equal(t, "Feel Good Movies", m.Results.Title())

	m = press(t, m, "esc")

	assert.Equal(t, domain.Popular(), m.Manager.State().Mode)
	assert.Equal(t, []string{"Dune"}, titles(m.Results.Items()))
}

func TestDetailOpensAndCloses(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(438631, "Dune"))
	source.movies[438631] = &domain.MovieDetail{
		Movie:   domain.Movie{ID: 438631, Title: "Dune", ReleaseDate: "2021-09-15"},
		Tagline: "It begins.",
		Runtime: 155,
	}

	m = press(t, m, "p", "enter")

	assert.Equal(t, ScreenDetail, m.Screen)
	st := m.Manager.State()
	require.Equal(t, browse.StatusReady, st.DetailStatus)
	assert.Equal(t, "Dune", st.Detail.Title())
	assert.Contains(t, m.View(), "It begins.")

	m = press(t, m, "esc")

	assert.Equal(t, ScreenResults, m.Screen)
	assert.Nil(t, m.Manager.State().Detail)
	// Leaving the detail keeps the list as it was
	assert.Equal(t, domain.Popular(), m.Manager.State().Mode)
	assert.Len(t, m.Results.Items(), 1)
}

func TestDetailFailureShowsReason(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(7, "Lost"))

	m = press(t, m, "p", "enter")

	st := m.Manager.State()
	assert.Equal(t, browse.StatusFailed, st.DetailStatus)
	assert.Equal(t, "Not found", st.DetailErr)
	assert.Equal(t, browse.StatusReady, st.Status)

	view := m.View()
	assert.Contains(t, view, "✗ Not found")
	assert.Contains(t, view, "r: retry")
}

func TestTrailerFromListPlaysOnceDetailLands(t *testing.T) {
	m, source, launcher := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(1, "Dune"))
	source.movies[1] = &domain.MovieDetail{
		Movie:  domain.Movie{ID: 1, Title: "Dune"},
		Videos: []domain.Video{{Key: "abc123", Site: "YouTube", Type: "Trailer", Official: true}},
	}

	m = press(t, m, "p", "t")

	assert.Equal(t, []string{"https://www.youtube.com/watch?v=abc123"}, launcher.played)
	assert.Equal(t, "Playing trailer: Dune", m.StatusMsg)
}

func TestTrailerMissing(t *testing.T) {
	m, source, launcher := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(1, "Dune"))
	source.movies[1] = &domain.MovieDetail{Movie: domain.Movie{ID: 1, Title: "Dune"}}

	m = press(t, m, "p", "enter", "t")

	assert.Empty(t, launcher.played)
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "No trailer available for Dune", m.StatusMsg)
}

func TestOpenIMDB(t *testing.T) {
	m, source, launcher := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(1, "Dune"))
	source.movies[1] = &domain.MovieDetail{Movie: domain.Movie{ID: 1, Title: "Dune"}, IMDBID: "tt1160419"}

	m = press(t, m, "p", "enter", "o")

	assert.Equal(t, []string{"https://www.imdb.com/title/tt1160419"}, launcher.opened)
}

func TestWatchlistAddAndRemove(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(1, "Dune"), movie(2, "Heat"))

	m = press(t, m, "p", "j", "a")

	st := m.Manager.State()
	require.Len(t, st.Watchlist, 1)
	assert.Equal(t, "Heat", st.Watchlist[0].Title)
	assert.Empty(t, st.WatchlistErr)
	assert.Equal(t, "Added Heat to watchlist", m.StatusMsg)

	// Adding again is a no-op
	m = press(t, m, "a")
	assert.Len(t, m.Manager.State().Watchlist, 1)

	m = press(t, m, "w")
	require.Equal(t, ScreenWatchlist, m.Screen)
	assert.Equal(t, []string{"Heat"}, titles(m.Watchlist.Items()))

	m = press(t, m, "x")
	assert.Empty(t, m.Manager.State().Watchlist)
	assert.Empty(t, m.Watchlist.Items())
}

func TestWatchlistAddFromDetail(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(1, "Dune"))
	source.movies[1] = &domain.MovieDetail{Movie: domain.Movie{ID: 1, Title: "Dune", VoteAverage: 7.8, VoteCount: 100}}

	m = press(t, m, "p", "enter", "a")

	assert.True(t, m.Manager.InWatchlist(1))
	assert.Contains(t, m.View(), "on watchlist")
}

func TestPeopleCannotBeAddedToWatchlist(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.SearchByPerson("nolan"), 1, 1, &domain.Person{ID: 525, Name: "Christopher Nolan"})

	m = press(t, m, "@")
	m = typeText(t, m, "nolan")
	m = press(t, m, "enter", "a")

	assert.Empty(t, m.Manager.State().Watchlist)
}

func TestFilterNarrowsLoadedResults(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(1, "The Matrix"), movie(2, "Heat"), movie(3, "Dune"))

	m = press(t, m, "p", "f")
	require.True(t, m.Results.IsFilterTyping())

	m = typeText(t, m, "matr")
	assert.Equal(t, 1, m.Results.ItemCount())
	assert.Equal(t, "The Matrix", m.Results.SelectedItem().GetTitle())

	// Filtering never touches the fetched list
	assert.Len(t, m.Manager.State().Items, 3)

	m = press(t, m, "esc")
	assert.False(t, m.Results.IsFiltering())
	assert.Equal(t, 3, m.Results.ItemCount())
}

func TestWatchlistSaveFailureShown(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	m = send(t, m, browse.WatchlistSavedMsg{Generation: 99, Err: errors.New("disk full")})

	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "Watchlist not saved: disk full", m.StatusMsg)
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	m = press(t, m, "?")
	require.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "Search by person")

	m = press(t, m, "?")
	assert.Equal(t, StateBrowsing, m.State)
}

func TestStartModeLoadsOnInit(t *testing.T) {
	source := newStubSource()
	source.setPage(domain.Mood(domain.MoodMindBenders), 1, 1, movie(20, "Primer"))
	watchlist, err := store.NewWatchlistStore("", adapter.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { watchlist.Close() })
	manager := browse.NewManager(source, watchlist, adapter.NullLogger())

	m := NewModel(manager, &recordingLauncher{}, Options{
		StartMode: domain.Mood(domain.MoodMindBenders),
		Logger:    adapter.NullLogger(),
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	// The list is titled and loading before Init runs
	assert.Equal(t, "Mind Benders Movies", m.Results.Title())
	assert.True(t, m.Manager.State().Loading())

	for _, msg := range drain(m.initCmd) {
		m = send(t, m, msg)
	}
	assert.Equal(t, []string{"Primer"}, titles(m.Results.Items()))
}

func TestOpenPoster(t *testing.T) {
	m, source, launcher := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 1, movie(1, "Dune"))
	source.movies[1] = &domain.MovieDetail{Movie: domain.Movie{ID: 1, Title: "Dune", PosterPath: "/d5NXSklXo0qyIYkgV94XAgMIckC.jpg"}}

	m = press(t, m, "p", "enter", "i")

	assert.Equal(t, []string{"https://image.tmdb.org/t/p/w500/d5NXSklXo0qyIYkgV94XAgMIckC.jpg"}, launcher.opened)
	assert.Equal(t, "Opened https://image.tmdb.org/t/p/w500/d5NXSklXo0qyIYkgV94XAgMIckC.jpg", m.StatusMsg)
}

func TestRetryKeyIgnoredWhileReady(t *testing.T) {
	m, source, _ := newTestModel(t, false)
	source.setPage(domain.Popular(), 1, 2, movie(1, "Dune"))
	source.setPage(domain.Popular(), 2, 2, movie(2, "Arrival"))

	m = press(t, m, "p", "]")
	require.Equal(t, []string{"Dune", "Arrival"}, titles(m.Results.Items()))

	m = press(t, m, "r")

	assert.Equal(t, browse.StatusReady, m.Manager.State().Status)
	assert.Equal(t, []string{"Dune", "Arrival"}, titles(m.Results.Items()))
}
