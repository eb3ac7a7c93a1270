package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted by Apply
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
)

// Color palette
var (
	ReelGold   = lipgloss.Color("#F5C518")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
)

// Raw marker characters (unstyled)
const (
	WatchlistChar = "★"
	MovieChar     = "●"
	PersonChar    = "◆"
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
)

// Help styles
var (
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
)

// Badge styles
var (
	BadgeStyle    lipgloss.Style
	DimBadgeStyle lipgloss.Style
)

// Spinner style
var SpinnerStyle lipgloss.Style

// Filter styles
var (
	FilterStyle       lipgloss.Style
	FilterPromptStyle lipgloss.Style
)

// Match highlight styles for filter results
var (
	MatchHighlightStyle         lipgloss.Style
	MatchHighlightSelectedStyle lipgloss.Style
)

func init() {
	build()
}

// Apply switches the palette to the named theme and rebuilds every style.
// Unknown names fall back to the default theme.
func Apply(theme string) {
	switch theme {
	case ThemeMono:
		ReelGold = lipgloss.Color("#FFFFFF")
		SlateDark = lipgloss.Color("#000000")
		SlateLight = lipgloss.Color("#3A3A3A")
		DimGray = lipgloss.Color("#808080")
		LightGray = lipgloss.Color("#C0C0C0")
		White = lipgloss.Color("#FFFFFF")
		Green = lipgloss.Color("#FFFFFF")
		Red = lipgloss.Color("#FFFFFF")
		Blue = lipgloss.Color("#C0C0C0")
	default:
		ReelGold = lipgloss.Color("#F5C518")
		SlateDark = lipgloss.Color("#1F2937")
		SlateLight = lipgloss.Color("#374151")
		DimGray = lipgloss.Color("#6B7280")
		LightGray = lipgloss.Color("#9CA3AF")
		White = lipgloss.Color("#F9FAFB")
		Green = lipgloss.Color("#10B981")
		Red = lipgloss.Color("#EF4444")
		Blue = lipgloss.Color("#3B82F6")
	}
	build()
}

func build() {
	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ReelGold)

	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray)

	TitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
		Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
		Foreground(ReelGold)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(ReelGold).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ReelGold).
		Padding(1, 2).
		Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Bold(true).
		MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(ReelGold)

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(DimGray)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(ReelGold).
		Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Background(SlateLight).
		Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(ReelGold)

	FilterStyle = lipgloss.NewStyle().
		Foreground(ReelGold)

	FilterPromptStyle = lipgloss.NewStyle().
		Foreground(ReelGold).
		Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
		Foreground(ReelGold).
		Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
		Foreground(ReelGold).
		Background(SlateLight).
		Bold(true)
}

// Helper functions

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads a string to the given display width
func Pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled explicitly to avoid ANSI reset codes breaking the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if part.Bold {
			style = style.Bold(true)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width, minus the left/right margin
	paddingNeeded := width - visibleLen - 2
	if paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		b.WriteString(padStyle.Render(strings.Repeat(" ", paddingNeeded)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Bold       bool
}
