package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tmdb"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Screen is the pane that fills the content area
type Screen int

const (
	ScreenResults Screen = iota
	ScreenWatchlist
	ScreenDetail
)

// Vertical chrome: two header lines and a single footer line
const (
	HeaderHeight = 2
	FooterHeight = 1
	ChromeHeight = HeaderHeight + FooterHeight

	defaultStatusTimeout = 3 * time.Second
)

// Options configures the application model
type Options struct {
	// InfiniteScroll loads the next page when the cursor reaches the last row
	InfiniteScroll bool

	// StatusTimeout is how long footer messages stay up (default 3s)
	StatusTimeout time.Duration

	// StartMode is the list shown on launch; the zero value is Popular
	StartMode domain.BrowseMode

	// ImageBaseURL prefixes poster and profile paths (TMDB default when empty)
	ImageBaseURL string

	Logger *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State  ApplicationState
	Screen Screen
	Ready  bool

	Manager  *browse.Manager
	Launcher Launcher
	logger   *slog.Logger

	// UI Components
	Results    *components.ResultList
	Watchlist  *components.ResultList
	Inspector  components.Inspector
	InputModal components.InputModal
	Spinner    spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg      string
	StatusIsErr    bool
	InfiniteScroll bool
	statusTimeout  time.Duration
	imageBaseURL   string

	// initCmd is the first list fetch, issued by NewModel and run by Init
	initCmd tea.Cmd

	// returnTo is the list screen the detail view was opened from
	returnTo Screen

	// pendingTrailer is the movie whose trailer plays once its detail lands
	pendingTrailer int

	// last detail requested, for retry
	detailKind domain.MediaType
	detailID   int
}

// NewModel creates a new application model
func NewModel(manager *browse.Manager, launcher Launcher, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	statusTimeout := opts.StatusTimeout
	if statusTimeout <= 0 {
		statusTimeout = defaultStatusTimeout
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := Model{
		State:          StateBrowsing,
		Screen:         ScreenResults,
		Manager:        manager,
		Launcher:       launcher,
		logger:         logger,
		Results:        components.NewResultList(opts.StartMode.Title()),
		Watchlist:      components.NewResultList("Watchlist"),
		Inspector:      components.NewInspector(),
		InputModal:     components.NewInputModal(),
		Spinner:        sp,
		InfiniteScroll: opts.InfiniteScroll,
		statusTimeout:  statusTimeout,
		imageBaseURL:   opts.ImageBaseURL,
	}

	marker := func(item domain.ListItem) bool {
		return item.GetMediaType() == domain.MediaTypeMovie && manager.InWatchlist(item.GetID())
	}
	m.Results.SetMarker(marker)
	m.Results.SetFocused(true)
	m.Watchlist.SetMarker(marker)
	m.Watchlist.SetFocused(true)
	m.Watchlist.SetEmptyText("Your watchlist is empty. Press a on a movie to add it.")
	m.initCmd = manager.SelectMode(opts.StartMode)
	m.syncState()

	return m
}

// Init starts the first list fetch and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.initCmd,
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		m.syncState()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.syncSpinner()
		return m, cmd

	case browse.PageLoadedMsg, browse.PageFailedMsg:
		if m.Manager.Apply(msg) {
			m.syncState()
		}
		return m, nil

	case browse.DetailLoadedMsg:
		if !m.Manager.Apply(msg) {
			return m, nil
		}
		m.syncState()
		if m.pendingTrailer != 0 && msg.Detail != nil && msg.Detail.Movie != nil && msg.Detail.Movie.ID == m.pendingTrailer {
			m.pendingTrailer = 0
			cmd := m.playTrailer(*msg.Detail.Movie)
			return m, cmd
		}
		return m, nil

	case browse.DetailFailedMsg:
		if m.Manager.Apply(msg) {
			m.pendingTrailer = 0
			m.syncState()
		}
		return m, nil

	case browse.WatchlistSavedMsg:
		if !m.Manager.Apply(msg) {
			return m, nil
		}
		m.syncState()
		if msg.Err != nil {
			m.logger.Error("watchlist save failed", "error", msg.Err)
			m.StatusMsg = "Watchlist not saved: " + domain.Reason(msg.Err)
			m.StatusIsErr = true
			return m, ClearStatusCmd(m.statusTimeout)
		}
		return m, nil

	case TrailerLaunchedMsg:
		m.StatusMsg = "Playing trailer: " + msg.Title
		m.StatusIsErr = false
		return m, ClearStatusCmd(m.statusTimeout)

	case URLOpenedMsg:
		m.StatusMsg = "Opened " + msg.URL
		m.StatusIsErr = false
		return m, ClearStatusCmd(m.statusTimeout)

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(m.statusTimeout)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// selectMode switches the result list to mode and shows it
func (m *Model) selectMode(mode domain.BrowseMode) tea.Cmd {
	cmd := m.Manager.SelectMode(mode)
	m.Results.Reset()
	m.Screen = ScreenResults
	m.syncState()
	return cmd
}

// openDetail fetches the full record for item and switches to the detail screen
func (m *Model) openDetail(item domain.ListItem) tea.Cmd {
	if item == nil {
		return nil
	}
	if m.Screen != ScreenDetail {
		m.returnTo = m.Screen
	}
	m.Screen = ScreenDetail
	m.detailKind = item.GetMediaType()
	m.detailID = item.GetID()
	cmd := m.Manager.FetchDetail(m.detailKind, m.detailID)
	m.syncState()
	return cmd
}

// retryDetail re-requests the last detail record
func (m *Model) retryDetail() tea.Cmd {
	if m.detailID == 0 {
		return nil
	}
	cmd := m.Manager.FetchDetail(m.detailKind, m.detailID)
	m.syncState()
	return cmd
}

// closeDetail returns to the list the detail was opened from
func (m *Model) closeDetail() {
	m.Manager.ClearDetail()
	m.pendingTrailer = 0
	m.Screen = m.returnTo
	m.syncState()
}

// activeList returns the list shown on the current screen, or nil on the detail screen
func (m Model) activeList() *components.ResultList {
	switch m.Screen {
	case ScreenResults:
		return m.Results
	case ScreenWatchlist:
		return m.Watchlist
	default:
		return nil
	}
}

// maybeLoadMore issues the next page when the cursor sits on the last loaded row
func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.InfiniteScroll || m.Screen != ScreenResults || !m.Results.AtEnd() {
		return nil
	}
	cmd := m.Manager.LoadMore()
	if cmd != nil {
		m.syncState()
	}
	return cmd
}

// addToWatchlist adds a movie and reports the outcome in the footer
func (m *Model) addToWatchlist(movie domain.Movie) tea.Cmd {
	if m.Manager.InWatchlist(movie.ID) {
		m.StatusMsg = movie.Title + " is already on your watchlist"
		m.StatusIsErr = false
		return ClearStatusCmd(m.statusTimeout)
	}
	save := m.Manager.AddToWatchlist(movie)
	if save == nil {
		return nil
	}
	m.syncState()
	m.StatusMsg = "Added " + movie.Title + " to watchlist"
	m.StatusIsErr = false
	return tea.Batch(save, ClearStatusCmd(m.statusTimeout))
}

// removeFromWatchlist drops a movie and reports the outcome in the footer
func (m *Model) removeFromWatchlist(id int, title string) tea.Cmd {
	save := m.Manager.RemoveFromWatchlist(id)
	if save == nil {
		return nil
	}
	m.syncState()
	m.StatusMsg = "Removed " + title + " from watchlist"
	m.StatusIsErr = false
	return tea.Batch(save, ClearStatusCmd(m.statusTimeout))
}

// imageURL returns the poster or profile image for a detail record
func (m Model) imageURL(d *browse.Detail) string {
	switch {
	case d == nil:
		return ""
	case d.Movie != nil:
		return tmdb.ImageURL(m.imageBaseURL, tmdb.PosterSize, d.Movie.PosterPath)
	case d.Person != nil:
		return tmdb.ImageURL(m.imageBaseURL, tmdb.ProfileSize, d.Person.ProfilePath)
	default:
		return ""
	}
}

// playTrailer launches the best trailer for a movie
func (m *Model) playTrailer(d domain.MovieDetail) tea.Cmd {
	video, ok := d.Trailer()
	if !ok || video.URL() == "" {
		m.StatusMsg = "No trailer available for " + d.Title
		m.StatusIsErr = true
		return ClearStatusCmd(m.statusTimeout)
	}
	m.StatusMsg = "Opening trailer..."
	m.StatusIsErr = false
	return PlayTrailerCmd(m.Launcher, d.Title, video.URL())
}

// syncState pushes the manager snapshot into the components
func (m *Model) syncState() {
	st := m.Manager.State()

	m.Results.SetTitle(st.Mode.Title())
	m.Results.SetItems(st.Items)
	m.Results.SetLoading(st.Loading())
	switch {
	case st.Mode.IsSearch() && st.Mode.Query == "":
		m.Results.SetEmptyText("Press / to search movies or @ to search people")
	case st.Status == browse.StatusFailed:
		m.Results.SetEmptyText("Could not load results")
	default:
		m.Results.SetEmptyText("No results")
	}

	watchlist := make([]domain.ListItem, len(st.Watchlist))
	for i := range st.Watchlist {
		watchlist[i] = &st.Watchlist[i]
	}
	m.Watchlist.SetItems(watchlist)

	m.Inspector.SetDetail(st.Detail, st.DetailStatus, st.DetailErr)
	if st.Detail != nil && st.Detail.Movie != nil {
		m.Inspector.SetInWatchlist(m.Manager.InWatchlist(st.Detail.Movie.ID))
	} else {
		m.Inspector.SetInWatchlist(false)
	}

	m.syncSpinner()
}

func (m *Model) syncSpinner() {
	view := m.Spinner.View()
	m.Results.SetSpinner(view)
	m.Watchlist.SetSpinner(view)
	m.Inspector.SetSpinner(view)
}

// updateLayout sizes every pane to the window
func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	if contentHeight < 5 {
		contentHeight = 5
	}
	m.Results.SetSize(m.Width, contentHeight)
	m.Watchlist.SetSize(m.Width, contentHeight)
	m.Inspector.SetSize(m.Width, contentHeight)
}
