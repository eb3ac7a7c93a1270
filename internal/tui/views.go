package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const appName = "reel"

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var content string
	switch m.Screen {
	case ScreenWatchlist:
		content = m.Watchlist.View()
	case ScreenDetail:
		content = m.Inspector.View()
	default:
		content = m.Results.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	// Overlay search prompt if visible
	if m.InputModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.InputModal.View())
	}

	return view
}

// renderHeader renders the app title line and the mode bar
func (m Model) renderHeader() string {
	st := m.Manager.State()

	title := styles.AccentStyle.Bold(true).Render(appName) + "  " + styles.TitleStyle.Render(st.Mode.Title())
	watch := styles.DimBadgeStyle.Render(fmt.Sprintf("★ %d", len(st.Watchlist)))
	gap := m.Width - lipgloss.Width(title) - lipgloss.Width(watch)
	if gap < 1 {
		gap = 1
	}
	top := title + strings.Repeat(" ", gap) + watch

	return top + "\n" + renderModeBar(st.Mode, m.Screen)
}

// renderModeBar lists the browse modes with the active one highlighted
func renderModeBar(mode domain.BrowseMode, screen Screen) string {
	type entry struct {
		key    string
		label  string
		active bool
	}

	entries := []entry{
		{"p", "Popular", mode.Kind == domain.ModePopular},
	}
	for i, mood := range domain.Moods {
		entries = append(entries, entry{
			key:    fmt.Sprintf("%d", i+1),
			label:  mood.String(),
			active: mode.Kind == domain.ModeMood && mode.Mood == mood,
		})
	}
	entries = append(entries,
		entry{"/", "Title", mode.Kind == domain.ModeSearchTitle},
		entry{"@", "Person", mode.Kind == domain.ModeSearchPerson},
	)

	parts := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		if e.active && screen != ScreenWatchlist {
			parts = append(parts, styles.HighlightStyle.Render(e.key+" "+e.label))
			continue
		}
		parts = append(parts, styles.HelpKeyStyle.Render(e.key)+" "+styles.HelpDescStyle.Render(e.label))
	}

	watchlist := styles.HelpKeyStyle.Render("w") + " " + styles.HelpDescStyle.Render("Watchlist")
	if screen == ScreenWatchlist {
		watchlist = styles.HighlightStyle.Render("w Watchlist")
	}
	parts = append(parts, watchlist)

	return strings.Join(parts, "  ")
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	st := m.Manager.State()

	// Left side: spinner while loading, then errors, then transient status
	var left string
	switch {
	case m.Screen == ScreenResults && st.Loading():
		text := "Loading..."
		if st.CurrentPage > 0 {
			text = "Loading more..."
		}
		left = m.Spinner.View() + " " + styles.DimStyle.Render(text)
	case m.Screen == ScreenResults && st.Status == browse.StatusFailed:
		left = styles.ErrorStyle.Render("✗ "+st.Err) + styles.DimStyle.Render("  press ") +
			styles.AccentStyle.Render("r") + styles.DimStyle.Render(" to retry")
	case m.Screen == ScreenDetail && st.DetailStatus == browse.StatusFailed:
		left = styles.ErrorStyle.Render("✗ "+st.DetailErr) + styles.DimStyle.Render("  press ") +
			styles.AccentStyle.Render("r") + styles.DimStyle.Render(" to retry")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case st.WatchlistErr != "":
		left = styles.ErrorStyle.Render("Watchlist not saved: " + st.WatchlistErr)
	}

	// Center section: paging position
	var center string
	switch m.Screen {
	case ScreenResults:
		if st.TotalPages > 0 {
			center = styles.DimStyle.Render(fmt.Sprintf("page %d/%d · %d of %d", st.CurrentPage, st.TotalPages, len(st.Items), st.TotalResults))
			if st.HasMore() {
				center += styles.DimStyle.Render("  ") + styles.AccentStyle.Render("]") + styles.DimStyle.Render(" more")
			}
		}
	case ScreenWatchlist:
		center = styles.DimStyle.Render(fmt.Sprintf("%d saved", len(st.Watchlist)))
	}

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          NAVIGATION
  p          Popular movies        j/k        Up/down
  1/2/3      Moods                 g/G        First/last item
  /          Search by title       PgUp/PgDn  Scroll page
  @          Search by person      Ctrl+u/d   Scroll half page
  ]          Next page             Enter      Details
  [          Back to page 1        h/Esc      Back
  r          Retry

WATCHLIST                       OTHER
  w          Show watchlist        f          Filter loaded results
  a          Add movie             t          Play trailer
  x          Remove movie          o          Open on IMDb
                                   i          Open poster
                                   q          Quit
                                   ?          This help

Press ? or Esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
