package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
)

const imdbTitleURL = "https://www.imdb.com/title/"

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to the search prompt if open
	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if submitted {
			cmd = m.selectMode(m.InputModal.Mode())
		}
		return m, cmd
	}

	// Filter typing swallows every key
	if list := m.activeList(); list != nil && list.IsFilterTyping() {
		_, cmd := list.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, Keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, Keys.Help) {
		m.State = StateHelp
		return m, nil
	}

	if m.Screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey handles keys on the results and watchlist screens
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.activeList()
	st := m.Manager.State()

	switch {
	case key.Matches(msg, Keys.Escape, Keys.Back):
		if list.IsFiltering() {
			list.ClearFilter()
			return m, nil
		}
		if m.Screen == ScreenWatchlist {
			m.Screen = ScreenResults
			return m, nil
		}
		// Back to the start: forget the session and show popular movies
		m.Manager.ResetSession()
		cmd := m.selectMode(domain.Popular())
		return m, cmd

	case key.Matches(msg, Keys.Popular):
		cmd := m.selectMode(domain.Popular())
		return m, cmd

	case key.Matches(msg, Keys.MoodFeelGood):
		cmd := m.selectMode(domain.Mood(domain.MoodFeelGood))
		return m, cmd

	case key.Matches(msg, Keys.MoodAction):
		cmd := m.selectMode(domain.Mood(domain.MoodActionFix))
		return m, cmd

	case key.Matches(msg, Keys.MoodMind):
		cmd := m.selectMode(domain.Mood(domain.MoodMindBenders))
		return m, cmd

	case key.Matches(msg, Keys.SearchTitle):
		m.InputModal.Show(domain.ModeSearchTitle, previousQuery(st.Mode, domain.ModeSearchTitle))
		return m, nil

	case key.Matches(msg, Keys.SearchPerson):
		m.InputModal.Show(domain.ModeSearchPerson, previousQuery(st.Mode, domain.ModeSearchPerson))
		return m, nil

	case key.Matches(msg, Keys.Filter):
		list.StartFilter()
		return m, nil

	case key.Matches(msg, Keys.Watchlist):
		if m.Screen == ScreenWatchlist {
			m.Screen = ScreenResults
		} else {
			m.Screen = ScreenWatchlist
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		cmd := m.openDetail(list.SelectedItem())
		return m, cmd

	case key.Matches(msg, Keys.AddWatch):
		movie, ok := list.SelectedItem().(*domain.Movie)
		if !ok {
			return m, nil
		}
		cmd := m.addToWatchlist(*movie)
		return m, cmd

	case key.Matches(msg, Keys.RemoveWatch):
		movie, ok := list.SelectedItem().(*domain.Movie)
		if !ok {
			return m, nil
		}
		cmd := m.removeFromWatchlist(movie.ID, movie.Title)
		return m, cmd

	case key.Matches(msg, Keys.Trailer):
		movie, ok := list.SelectedItem().(*domain.Movie)
		if !ok {
			return m, nil
		}
		// The trailer comes with the detail record; play it once that lands
		m.pendingTrailer = movie.ID
		cmd := m.openDetail(movie)
		return m, cmd
	}

	if m.Screen == ScreenResults {
		switch {
		case key.Matches(msg, Keys.NextPage):
			if !st.HasMore() || st.Loading() {
				return m, nil
			}
			cmd := m.Manager.LoadPage(st.CurrentPage + 1)
			m.syncState()
			return m, cmd

		case key.Matches(msg, Keys.FirstPage):
			cmd := m.Manager.LoadPage(1)
			m.Results.Reset()
			m.syncState()
			return m, cmd

		case key.Matches(msg, Keys.Retry):
			cmd := m.Manager.Retry()
			m.syncState()
			return m, cmd
		}
	}

	// Everything else navigates the list
	_, cmd := list.Update(msg)
	more := m.maybeLoadMore()
	return m, tea.Batch(cmd, more)
}

// handleDetailKey handles keys on the detail screen
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.Manager.State()
	var movie *domain.MovieDetail
	if st.Detail != nil {
		movie = st.Detail.Movie
	}

	switch {
	case key.Matches(msg, Keys.Escape, Keys.Back):
		m.closeDetail()
		return m, nil

	case key.Matches(msg, Keys.Trailer):
		if movie == nil {
			return m, nil
		}
		cmd := m.playTrailer(*movie)
		return m, cmd

	case key.Matches(msg, Keys.AddWatch):
		if movie == nil {
			return m, nil
		}
		cmd := m.addToWatchlist(movie.Movie)
		return m, cmd

	case key.Matches(msg, Keys.RemoveWatch):
		if movie == nil {
			return m, nil
		}
		cmd := m.removeFromWatchlist(movie.ID, movie.Title)
		return m, cmd

	case key.Matches(msg, Keys.OpenIMDB):
		if movie == nil || movie.IMDBID == "" {
			return m, nil
		}
		return m, OpenURLCmd(m.Launcher, imdbTitleURL+movie.IMDBID)

	case key.Matches(msg, Keys.OpenPoster):
		url := m.imageURL(st.Detail)
		if url == "" {
			return m, nil
		}
		return m, OpenURLCmd(m.Launcher, url)

	case key.Matches(msg, Keys.Retry):
		if st.DetailStatus != browse.StatusFailed {
			return m, nil
		}
		cmd := m.retryDetail()
		return m, cmd
	}

	var cmd tea.Cmd
	m.Inspector, cmd = m.Inspector.Update(msg)
	return m, cmd
}

// previousQuery returns the current query when mode is a search of kind
func previousQuery(mode domain.BrowseMode, kind domain.ModeKind) string {
	if mode.Kind == kind {
		return mode.Query
	}
	return ""
}
