package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for list panes
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ResultList is a scrollable list of movies or people with a local fuzzy filter
type ResultList struct {
	items []domain.ListItem
	title string

	// marked reports whether an item gets the watchlist star
	marked func(item domain.ListItem) bool

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Loading state
	loading bool
	spinner string

	emptyText string

	keys       ResultListKeyMap
	filterKeys FilterKeyMap

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	index        *search.FilterIndex
	results      []search.FilterResult // nil when the query is empty
}

// NewResultList creates an empty list with the given title
func NewResultList(title string) *ResultList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "f "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ResultList{
		title:       title,
		emptyText:   "No results",
		keys:        DefaultResultListKeyMap(),
		filterKeys:  DefaultFilterKeyMap(),
		filterInput: ti,
	}
}

// Update handles navigation and filter typing
func (c *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	// Typing into the filter bar
	if c.IsFilterTyping() {
		switch {
		case key.Matches(keyMsg, c.filterKeys.Escape):
			c.clearFilter()
			return c, nil
		case key.Matches(keyMsg, c.filterKeys.Accept):
			c.filterInput.Blur()
			return c, nil
		case keyMsg.Type == tea.KeyBackspace && c.filterInput.Value() == "":
			c.clearFilter()
			return c, nil
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter(true)
		return c, cmd
	}

	// Filter accepted, navigating the matches
	if c.filterActive {
		switch {
		case key.Matches(keyMsg, c.filterKeys.Escape):
			c.clearFilter()
			return c, nil
		case key.Matches(keyMsg, c.filterKeys.Refocus):
			c.filterInput.Focus()
			return c, nil
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	half := c.maxVisible / 2
	if half < 1 {
		half = 1
	}

	switch {
	case key.Matches(keyMsg, c.keys.Down):
		c.moveCursor(1)
	case key.Matches(keyMsg, c.keys.Up):
		c.moveCursor(-1)
	case key.Matches(keyMsg, c.keys.Home):
		c.cursor = 0
		c.offset = 0
	case key.Matches(keyMsg, c.keys.End):
		c.cursor = count - 1
		c.ensureVisible()
	case key.Matches(keyMsg, c.keys.HalfDown):
		c.moveCursor(half)
	case key.Matches(keyMsg, c.keys.HalfUp):
		c.moveCursor(-half)
	case key.Matches(keyMsg, c.keys.PageDown):
		c.moveCursor(c.maxVisible)
	case key.Matches(keyMsg, c.keys.PageUp):
		c.moveCursor(-c.maxVisible)
	}

	return c, nil
}

// View renders the bordered list
func (c *ResultList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	content := c.renderContent()

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(content)
}

func (c *ResultList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ResultList) SetFocused(focused bool) { c.focused = focused }
func (c *ResultList) SetTitle(title string)   { c.title = title }
func (c *ResultList) Title() string           { return c.title }
func (c *ResultList) SetLoading(loading bool) { c.loading = loading }
func (c *ResultList) SetSpinner(view string)  { c.spinner = view }
func (c *ResultList) SetEmptyText(s string)   { c.emptyText = s }

// SetMarker installs the predicate that decides which rows get the watchlist star
func (c *ResultList) SetMarker(marked func(item domain.ListItem) bool) {
	c.marked = marked
}

// SetItems replaces the list contents. When the new list extends the old
// one (another page arrived) the cursor and filter are kept; otherwise the
// view starts over at the top.
func (c *ResultList) SetItems(items []domain.ListItem) {
	extends := len(c.items) > 0 && len(items) >= len(c.items) && sameItem(items[0], c.items[0])
	c.items = items
	c.index = nil

	if !extends {
		c.cursor = 0
		c.offset = 0
	}
	if c.filterActive {
		c.applyFilter(!extends)
	}
	c.clampCursor()
}

// Reset drops the filter and moves the cursor to the top
func (c *ResultList) Reset() {
	c.clearFilter()
	c.cursor = 0
	c.offset = 0
}

// Items returns the unfiltered items
func (c *ResultList) Items() []domain.ListItem {
	return c.items
}

// SelectedItem returns the item under the cursor, or nil
func (c *ResultList) SelectedItem() domain.ListItem {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return nil
	}
	return c.items[c.mapIndex(c.cursor)]
}

func (c *ResultList) SelectedIndex() int {
	return c.cursor
}

func (c *ResultList) SetSelectedIndex(idx int) {
	c.cursor = idx
	c.clampCursor()
	c.ensureVisible()
}

// ItemCount returns the number of visible rows (matches when filtering)
func (c *ResultList) ItemCount() int {
	if c.results != nil {
		return len(c.results)
	}
	return len(c.items)
}

// AtEnd reports whether the cursor sits on the last unfiltered row.
// Filtered views never trigger further loading.
func (c *ResultList) AtEnd() bool {
	if c.filterActive {
		return false
	}
	return len(c.items) > 0 && c.cursor == len(c.items)-1
}

// StartFilter activates the filter input
func (c *ResultList) StartFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ResultList) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ResultList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ResultList) ClearFilter() {
	c.clearFilter()
}

// Internal methods

func (c *ResultList) moveCursor(delta int) {
	c.cursor += delta
	c.clampCursor()
	c.ensureVisible()
}

func (c *ResultList) clampCursor() {
	count := c.ItemCount()
	if c.cursor >= count {
		c.cursor = count - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *ResultList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ResultList) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ResultList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.results = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
	c.clampCursor()
}

func (c *ResultList) applyFilter(resetCursor bool) {
	c.filterQuery = c.filterInput.Value()

	if strings.TrimSpace(c.filterQuery) == "" {
		c.results = nil
		return
	}

	if c.index == nil {
		c.index = search.NewFilterIndex(c.items)
	}
	c.results = c.index.Filter(c.filterQuery)
	if c.results == nil {
		c.results = []search.FilterResult{}
	}

	if resetCursor {
		c.cursor = 0
		c.offset = 0
	}
}

func (c *ResultList) mapIndex(i int) int {
	if c.results != nil && i < len(c.results) {
		return c.results[i].Position
	}
	return i
}

func (c *ResultList) matchedIndexes(i int) []int {
	if c.results != nil && i < len(c.results) {
		return c.results[i].MatchedIndexes
	}
	return nil
}

func sameItem(a, b domain.ListItem) bool {
	return a.GetID() == b.GetID() && a.GetMediaType() == b.GetMediaType()
}

// Rendering

func (c *ResultList) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	count := c.ItemCount()

	// Only blank the list for a first-page load; later pages keep what is shown
	if c.loading && len(c.items) == 0 {
		loadingLine := styles.DimStyle.Render(c.spinner + " Loading...")
		return titleLine + "\n" + " " + "\n" + loadingLine + "\n" + " "
	}

	if count == 0 {
		emptyMsg := styles.DimStyle.Render(c.emptyText)
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		item := c.items[c.mapIndex(i)]
		lines = append(lines, c.renderItem(item, c.matchedIndexes(i), i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	footer := " "
	switch {
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	case c.loading:
		footer = styles.DimStyle.Render(c.spinner + " loading more...")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}

	return content
}

func (c *ResultList) renderItem(item domain.ListItem, matched []int, selected bool, width int) string {
	markChar := styles.MovieChar
	markFg := styles.DimGray
	if item.GetMediaType() == domain.MediaTypePerson {
		markChar = styles.PersonChar
		markFg = styles.Blue
	}
	if c.marked != nil && c.marked(item) {
		markChar = styles.WatchlistChar
		markFg = styles.ReelGold
	}

	desc := item.GetDescription()

	// Available space: width - marker(1) - space(1) - margins(2)
	available := width - 4
	descWidth := 0
	if desc != "" && available > 30 {
		descWidth = lipgloss.Width(desc) + 2
		if descWidth > available/2 {
			descWidth = available / 2
		}
	}
	titleWidth := available - descWidth
	if titleWidth < 5 {
		titleWidth = 5
	}
	title := styles.Truncate(item.GetTitle(), titleWidth)

	parts := []styles.RowPart{
		{Text: markChar, Foreground: &markFg},
		{Text: " "},
	}
	parts = append(parts, highlightParts(title, matched)...)

	if descWidth > 0 {
		gap := titleWidth - lipgloss.Width(title)
		dim := styles.DimGray
		parts = append(parts, styles.RowPart{
			Text:       strings.Repeat(" ", gap+2) + styles.Truncate(desc, descWidth-2),
			Foreground: &dim,
		})
	}

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits text into runs, colouring the byte offsets in matched
func highlightParts(text string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: text}}
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	gold := styles.ReelGold
	var parts []styles.RowPart
	var run strings.Builder
	runMatched := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		if runMatched {
			part.Foreground = &gold
			part.Bold = true
		}
		parts = append(parts, part)
		run.Reset()
	}

	for pos, r := range text {
		m := matchSet[pos]
		if m != runMatched {
			flush()
			runMatched = m
		}
		run.WriteRune(r)
	}
	flush()

	return parts
}

func (c *ResultList) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
	}

	return input + countStr
}
