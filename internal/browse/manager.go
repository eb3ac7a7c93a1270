package browse

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
)

// Manager owns the browse state: active mode, accumulated results,
// pagination, the selected detail and the watchlist.
//
// Every method must be called from a single goroutine (the bubbletea
// Update loop). Fetches run as tea.Cmds and report back through Apply.
type Manager struct {
	source domain.MetadataSource
	writer *writer
	logger *slog.Logger
	now    func() time.Time

	state BrowseState

	seq     uint64 // last list token issued
	current Token  // token of the authoritative list request

	detailSeq uint64
	saveGen   uint64
}

// NewManager creates a manager and loads the persisted watchlist
func NewManager(source domain.MetadataSource, store domain.WatchlistStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	watchlist := store.Load()
	if watchlist == nil {
		watchlist = []domain.Movie{}
	}
	logger.Info("watchlist loaded", "entries", len(watchlist))

	return &Manager{
		source: source,
		writer: &writer{store: store, logger: logger},
		logger: logger,
		now:    time.Now,
		state: BrowseState{
			Mode:        domain.Popular(),
			CurrentPage: 1,
			TotalPages:  1,
			Status:      StatusIdle,
			Watchlist:   watchlist,
		},
	}
}

// State returns a snapshot safe to read while the manager keeps mutating
func (m *Manager) State() BrowseState {
	return m.state.clone()
}

// SelectMode switches to mode and starts loading its first page. Results
// still in flight for the previous mode are discarded when they land.
// A search with an empty query clears the results and stays idle.
func (m *Manager) SelectMode(mode domain.BrowseMode) tea.Cmd {
	if err := mode.Validate(); err != nil {
		m.logger.Warn("ignoring invalid browse mode", "mode", mode.String(), "error", err)
		return nil
	}

	m.state.Mode = mode
	m.state.Items = nil
	m.state.CurrentPage = 1
	m.state.TotalPages = 1
	m.state.TotalResults = 0
	m.state.Err = ""

	if mode.IsSearch() && mode.Query == "" {
		m.supersede()
		m.state.Status = StatusIdle
		return nil
	}

	return m.issue(1)
}

// LoadPage fetches page n of the active mode. Page 1 replaces the
// accumulated items, any later page is appended. Returns nil for n < 1
// or when the active mode has nothing to fetch.
func (m *Manager) LoadPage(n int) tea.Cmd {
	if n < 1 {
		return nil
	}
	if m.state.Mode.IsSearch() && m.state.Mode.Query == "" {
		return nil
	}
	if n == 1 {
		m.state.Items = nil
	}
	return m.issue(n)
}

// LoadMore fetches the page after CurrentPage (infinite scroll). It does
// nothing while a fetch is outstanding, after a failure, before the first
// page has loaded, or on the last page.
func (m *Manager) LoadMore() tea.Cmd {
	if m.state.Status != StatusReady || !m.state.HasMore() {
		return nil
	}
	return m.LoadPage(m.state.CurrentPage + 1)
}

// Retry re-issues the most recent list request after it failed. Before
// anything has been fetched it loads the first page of the active mode;
// otherwise it does nothing unless the list is Failed.
func (m *Manager) Retry() tea.Cmd {
	if m.current.Seq == 0 {
		return m.SelectMode(m.state.Mode)
	}
	if m.state.Status != StatusFailed {
		return nil
	}
	return m.LoadPage(m.current.Page)
}

// ResetSession returns to the initial popular view, keeping the watchlist.
// Nothing is fetched; callers follow up with SelectMode.
func (m *Manager) ResetSession() {
	m.supersede()
	m.current = Token{}
	m.detailSeq++

	watchlist := m.state.Watchlist
	m.state = BrowseState{
		Mode:        domain.Popular(),
		CurrentPage: 1,
		TotalPages:  1,
		Status:      StatusIdle,
		Watchlist:   watchlist,
	}
}

// supersede invalidates any outstanding list request
func (m *Manager) supersede() {
	m.seq++
	m.current = Token{Seq: m.seq, Mode: m.state.Mode}
}

// issue starts a fetch for page n of the active mode
func (m *Manager) issue(page int) tea.Cmd {
	m.seq++
	token := Token{Seq: m.seq, Mode: m.state.Mode, Page: page}
	m.current = token
	m.state.Status = StatusLoading
	m.state.Err = ""

	m.logger.Debug("list fetch issued", "seq", token.Seq, "mode", token.Mode.String(), "page", page)

	source := m.source
	return func() tea.Msg {
		result, err := fetchPage(context.Background(), source, token)
		if err != nil {
			return PageFailedMsg{Token: token, Err: err}
		}
		return PageLoadedMsg{Token: token, Result: result}
	}
}

func fetchPage(ctx context.Context, source domain.MetadataSource, token Token) (domain.ResultPage, error) {
	mode := token.Mode
	switch mode.Kind {
	case domain.ModePopular:
		return source.PopularMovies(ctx, token.Page)
	case domain.ModeMood:
		return source.DiscoverByMood(ctx, mode.Mood, token.Page)
	case domain.ModeSearchTitle:
		return source.SearchMovies(ctx, mode.Query, token.Page)
	case domain.ModeSearchPerson:
		return source.SearchPeople(ctx, mode.Query, token.Page)
	default:
		return domain.ResultPage{}, fmt.Errorf("unsupported browse mode %s", mode.Kind)
	}
}

// FetchDetail loads the full record for a movie or person. Only the most
// recently requested detail is ever applied.
func (m *Manager) FetchDetail(kind domain.MediaType, id int) tea.Cmd {
	m.detailSeq++
	seq := m.detailSeq
	m.state.Detail = nil
	m.state.DetailStatus = StatusLoading
	m.state.DetailErr = ""

	source := m.source
	return func() tea.Msg {
		ctx := context.Background()
		detail := &Detail{}
		var err error
		switch kind {
		case domain.MediaTypePerson:
			detail.Person, err = source.PersonDetail(ctx, id)
		default:
			detail.Movie, err = source.MovieDetail(ctx, id)
		}
		if err != nil {
			return DetailFailedMsg{Seq: seq, Kind: kind, ID: id, Err: err}
		}
		return DetailLoadedMsg{Seq: seq, Kind: kind, ID: id, Detail: detail}
	}
}

// ClearDetail drops the selected detail and ignores any detail in flight
func (m *Manager) ClearDetail() {
	m.detailSeq++
	m.state.Detail = nil
	m.state.DetailStatus = StatusIdle
	m.state.DetailErr = ""
}

// InWatchlist reports whether a movie id is on the watchlist
func (m *Manager) InWatchlist(id int) bool {
	return m.watchlistIndex(id) >= 0
}

func (m *Manager) watchlistIndex(id int) int {
	for i, entry := range m.state.Watchlist {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// AddToWatchlist appends movie unless its id is already present. The
// returned command writes the new watchlist through to storage; it is
// nil when nothing changed.
func (m *Manager) AddToWatchlist(movie domain.Movie) tea.Cmd {
	if movie.ID <= 0 || m.InWatchlist(movie.ID) {
		return nil
	}
	m.state.Watchlist = append(m.state.Watchlist, movie)
	m.logger.Info("added to watchlist", "id", movie.ID, "title", movie.Title)
	return m.persist()
}

// RemoveFromWatchlist drops the entry with id. The returned command
// writes the change through; it is nil when id was not present.
func (m *Manager) RemoveFromWatchlist(id int) tea.Cmd {
	i := m.watchlistIndex(id)
	if i < 0 {
		return nil
	}
	watchlist := make([]domain.Movie, 0, len(m.state.Watchlist)-1)
	watchlist = append(watchlist, m.state.Watchlist[:i]...)
	watchlist = append(watchlist, m.state.Watchlist[i+1:]...)
	m.state.Watchlist = watchlist
	m.logger.Info("removed from watchlist", "id", id)
	return m.persist()
}

func (m *Manager) persist() tea.Cmd {
	m.saveGen++
	snapshot := append([]domain.Movie{}, m.state.Watchlist...)
	return m.writer.saveCmd(m.saveGen, snapshot)
}

// Apply folds a fetch or save result into the state. It reports whether
// the state changed; superseded responses are dropped and return false.
func (m *Manager) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if msg.Token != m.current {
			m.dropStale(msg.Token)
			return false
		}
		m.applyPage(msg.Token.Page, msg.Result)
		return true

	case PageFailedMsg:
		if msg.Token != m.current {
			m.dropStale(msg.Token)
			return false
		}
		m.state.Status = StatusFailed
		m.state.Err = domain.Reason(msg.Err)
		m.logger.Warn("list fetch failed", "mode", msg.Token.Mode.String(), "page", msg.Token.Page, "error", msg.Err)
		return true

	case DetailLoadedMsg:
		if msg.Seq != m.detailSeq {
			m.logger.Debug("dropping stale detail", "seq", msg.Seq, "current", m.detailSeq)
			return false
		}
		m.state.Detail = msg.Detail
		m.state.DetailStatus = StatusReady
		m.state.DetailErr = ""
		return true

	case DetailFailedMsg:
		if msg.Seq != m.detailSeq {
			m.logger.Debug("dropping stale detail failure", "seq", msg.Seq, "current", m.detailSeq)
			return false
		}
		m.state.DetailStatus = StatusFailed
		m.state.DetailErr = domain.Reason(msg.Err)
		m.logger.Warn("detail fetch failed", "kind", msg.Kind.String(), "id", msg.ID, "error", msg.Err)
		return true

	case WatchlistSavedMsg:
		if msg.Skipped {
			return false
		}
		if msg.Err != nil {
			m.state.WatchlistErr = msg.Err.Error()
		} else {
			m.state.WatchlistErr = ""
		}
		return true
	}
	return false
}

func (m *Manager) applyPage(page int, result domain.ResultPage) {
	if page == 1 {
		m.state.Items = append([]domain.ListItem(nil), result.Items...)
	} else {
		m.state.Items = append(m.state.Items, result.Items...)
	}

	total := result.TotalPages
	if total < page {
		total = page
	}
	m.state.CurrentPage = page
	m.state.TotalPages = total
	m.state.TotalResults = result.TotalResults
	m.state.Status = StatusReady
	m.state.Err = ""
	m.state.LastUpdated = m.now()

	m.logger.Debug("page applied", "mode", m.state.Mode.String(), "page", page, "items", len(result.Items), "total_pages", total)
}

func (m *Manager) dropStale(token Token) {
	m.logger.Debug("dropping stale page", "seq", token.Seq, "current", m.current.Seq, "mode", token.Mode.String(), "page", token.Page)
}
