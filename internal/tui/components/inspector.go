package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2

	// maxCredits caps the filmography shown for a person
	maxCredits = 25
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector displays the full record of a movie or person
type Inspector struct {
	detail      *browse.Detail
	status      browse.Status
	err         string
	inWatchlist bool
	spinner     string

	width      int
	height     int
	offset     int // scroll offset
	maxVisible int // max visible lines

	keys InspectorKeyMap
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{keys: DefaultInspectorKeyMap()}
}

// SetDetail updates the displayed record and its fetch status.
// Scroll resets when a different record arrives.
func (i *Inspector) SetDetail(detail *browse.Detail, status browse.Status, err string) {
	if detail != i.detail {
		i.offset = 0
	}
	i.detail = detail
	i.status = status
	i.err = err
}

// SetInWatchlist toggles the watchlist badge for the displayed movie
func (i *Inspector) SetInWatchlist(in bool) {
	i.inWatchlist = in
}

func (i *Inspector) SetSpinner(view string) {
	i.spinner = view
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Reserve space for border, scroll indicators, title and blank line
	i.maxVisible = height - InspectorBorderHeight - InspectorScrollIndicators - 2
	if i.maxVisible < 1 {
		i.maxVisible = 1
	}
}

// HasDetail returns true if a record is loaded
func (i Inspector) HasDetail() bool {
	return i.detail != nil
}

// Update scrolls the body
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return i, nil
	}
	switch {
	case key.Matches(keyMsg, i.keys.Down):
		if i.offset < i.maxOffset() {
			i.offset++
		}
	case key.Matches(keyMsg, i.keys.Up):
		if i.offset > 0 {
			i.offset--
		}
	}
	return i, nil
}

func (i Inspector) contentWidth() int {
	// Border takes 2 chars (1 each side), leave 1 char safety margin
	w := i.width - 3
	if w < 10 {
		w = 10
	}
	return w
}

func (i Inspector) bodyHeight(content inspectorContent) int {
	h := i.maxVisible - len(splitLines(content.header)) - len(splitLines(content.footer))
	if h < 1 {
		h = 1
	}
	return h
}

func (i Inspector) maxOffset() int {
	content := i.render(i.contentWidth())
	n := len(splitLines(content.body)) - i.bodyHeight(content)
	if n < 0 {
		return 0
	}
	return n
}

// View renders the component
func (i Inspector) View() string {
	style := styles.ActiveBorder
	width := i.contentWidth()
	content := i.render(width)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Details", width))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := i.bodyHeight(content)

	totalBodyLines := len(bodyLines)
	maxOffset := totalBodyLines - availableForBody
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := i.offset
	if offset > maxOffset {
		offset = maxOffset
	}

	end := offset + availableForBody
	if end > totalBodyLines {
		end = totalBodyLines
	}
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < totalBodyLines {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if len(headerLines) > 0 {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if len(footerLines) > 0 {
		parts = append(parts, footerLines...)
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) render(width int) inspectorContent {
	switch {
	case i.status == browse.StatusLoading:
		return inspectorContent{body: styles.DimStyle.Render(i.spinner + " Loading...")}
	case i.status == browse.StatusFailed:
		return inspectorContent{
			header: styles.ErrorStyle.Render(styles.Truncate("✗ "+i.err, width)),
			footer: styles.DimStyle.Render("r: retry  esc: back"),
		}
	case i.detail == nil:
		return inspectorContent{body: styles.DimStyle.Render("Nothing selected")}
	case i.detail.Movie != nil:
		return i.renderMovie(*i.detail.Movie, width)
	case i.detail.Person != nil:
		return renderPerson(*i.detail.Person, width)
	default:
		return inspectorContent{}
	}
}

func (i Inspector) renderMovie(d domain.MovieDetail, width int) inspectorContent {
	var header strings.Builder

	title := d.Title
	if year := d.Year(); year > 0 {
		title = fmt.Sprintf("%s (%d)", d.Title, year)
	}
	header.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))
	header.WriteString("\n")

	if d.Tagline != "" {
		header.WriteString(styles.SubtitleStyle.Render(styles.Truncate(d.Tagline, width)))
		header.WriteString("\n")
	}

	var metaParts []string
	if d.ReleaseDate != "" {
		metaParts = append(metaParts, d.ReleaseDate)
	}
	if rt := d.FormattedRuntime(); rt != "" {
		metaParts = append(metaParts, rt)
	}
	if d.Status != "" && d.Status != "Released" {
		metaParts = append(metaParts, d.Status)
	}
	if len(metaParts) > 0 {
		header.WriteString(styles.DimStyle.Render(strings.Join(metaParts, " · ")))
		header.WriteString("\n")
	}

	var statusParts []string
	if rating := d.FormattedRating(); rating != "" {
		statusParts = append(statusParts, ratingStyle(d.VoteAverage).Render("★ "+rating)+
			styles.DimStyle.Render(fmt.Sprintf(" (%d votes)", d.VoteCount)))
	}
	if i.inWatchlist {
		statusParts = append(statusParts, styles.BadgeStyle.Render("on watchlist"))
	}
	if len(statusParts) > 0 {
		header.WriteString(strings.Join(statusParts, "   "))
	}

	var body strings.Builder
	if genres := d.GenreNames(); len(genres) > 0 {
		body.WriteString(styles.AccentStyle.Render(strings.Join(genres, ", ")))
		body.WriteString("\n\n")
	}
	if d.Overview != "" {
		body.WriteString(styles.SubtitleStyle.Render(wordWrap(d.Overview, bodyWidth(width))))
	} else {
		body.WriteString(styles.DimStyle.Render("No overview available."))
	}

	var footer strings.Builder
	footer.WriteString(styles.DimStyle.Render(strings.Repeat("─", width)))
	footer.WriteString("\n")
	var hints []string
	if _, ok := d.Trailer(); ok {
		hints = append(hints, "t: trailer")
	}
	if i.inWatchlist {
		hints = append(hints, "x: remove from watchlist")
	} else {
		hints = append(hints, "a: add to watchlist")
	}
	if d.IMDBID != "" {
		hints = append(hints, "o: imdb")
	}
	if d.PosterPath != "" {
		hints = append(hints, "i: poster")
	}
	hints = append(hints, "esc: back")
	footer.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(hints, "  "), width)))

	return inspectorContent{
		header: strings.TrimRight(header.String(), "\n"),
		body:   body.String(),
		footer: footer.String(),
	}
}

func renderPerson(p domain.PersonDetail, width int) inspectorContent {
	var header strings.Builder
	header.WriteString(styles.TitleStyle.Render(styles.Truncate(p.Name, width)))
	header.WriteString("\n")

	var metaParts []string
	if p.KnownForDepartment != "" {
		metaParts = append(metaParts, p.KnownForDepartment)
	}
	if life := p.Lifespan(); life != "" {
		metaParts = append(metaParts, life)
	}
	if p.PlaceOfBirth != "" {
		metaParts = append(metaParts, p.PlaceOfBirth)
	}
	if len(metaParts) > 0 {
		header.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(metaParts, " · "), width)))
	}

	var body strings.Builder
	if p.Biography != "" {
		body.WriteString(styles.SubtitleStyle.Render(wordWrap(p.Biography, bodyWidth(width))))
		body.WriteString("\n\n")
	}

	if len(p.Cast) > 0 {
		body.WriteString(styles.AccentStyle.Render("Acting"))
		body.WriteString("\n")
		for n, c := range p.Cast {
			if n == maxCredits {
				body.WriteString(styles.DimStyle.Render(fmt.Sprintf("  … %d more", len(p.Cast)-maxCredits)))
				body.WriteString("\n")
				break
			}
			body.WriteString(renderCredit(c.Movie, c.Character, width))
			body.WriteString("\n")
		}
		body.WriteString("\n")
	}

	if len(p.Crew) > 0 {
		body.WriteString(styles.AccentStyle.Render("Crew"))
		body.WriteString("\n")
		for n, c := range p.Crew {
			if n == maxCredits {
				body.WriteString(styles.DimStyle.Render(fmt.Sprintf("  … %d more", len(p.Crew)-maxCredits)))
				body.WriteString("\n")
				break
			}
			body.WriteString(renderCredit(c.Movie, c.Job, width))
			body.WriteString("\n")
		}
	}

	return inspectorContent{
		header: strings.TrimRight(header.String(), "\n"),
		body:   strings.TrimRight(body.String(), "\n"),
		footer: styles.DimStyle.Render(personHints(p)),
	}
}

func personHints(p domain.PersonDetail) string {
	if p.ProfilePath != "" {
		return "i: photo  esc: back"
	}
	return "esc: back"
}

func renderCredit(m domain.Movie, role string, width int) string {
	year := "    "
	if y := m.Year(); y > 0 {
		year = fmt.Sprintf("%d", y)
	}
	line := m.Title
	if role != "" {
		line += " as " + role
	}
	return styles.DimStyle.Render("  "+year+"  ") +
		styles.SubtitleStyle.Render(styles.Truncate(line, width-8))
}

func ratingStyle(avg float64) lipgloss.Style {
	switch {
	case avg >= 7:
		return lipgloss.NewStyle().Foreground(styles.Green)
	case avg >= 5:
		return lipgloss.NewStyle().Foreground(styles.ReelGold)
	default:
		return lipgloss.NewStyle().Foreground(styles.Red)
	}
}

func bodyWidth(width int) int {
	w := width - 2
	if w > 80 {
		w = 80
	}
	return w
}

// splitLines splits a string into lines, returning empty slice for empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for p, para := range strings.Split(text, "\n") {
		if p > 0 {
			result.WriteString("\n")
		}
		lineLen := 0
		for _, word := range strings.Fields(para) {
			wordLen := lipgloss.Width(word)

			if lineLen+wordLen+1 > width && lineLen > 0 {
				result.WriteString("\n")
				lineLen = 0
			}
			if lineLen > 0 {
				result.WriteString(" ")
				lineLen++
			}

			result.WriteString(word)
			lineLen += wordLen
		}
	}

	return result.String()
}
