package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Enter key.Binding
	Back  key.Binding

	// Browse modes
	Popular      key.Binding
	MoodFeelGood key.Binding
	MoodAction   key.Binding
	MoodMind     key.Binding
	SearchTitle  key.Binding
	SearchPerson key.Binding

	// Paging
	NextPage  key.Binding
	FirstPage key.Binding
	Retry     key.Binding

	// Actions
	Quit        key.Binding
	Help        key.Binding
	Escape      key.Binding
	Filter      key.Binding
	Watchlist   key.Binding
	AddWatch    key.Binding
	RemoveWatch key.Binding
	Trailer     key.Binding
	OpenIMDB    key.Binding
	OpenPoster  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("h", "left", "backspace"),
			key.WithHelp("h/←", "back"),
		),

		// Browse modes
		Popular: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "popular"),
		),
		MoodFeelGood: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "feel good"),
		),
		MoodAction: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "action fix"),
		),
		MoodMind: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "mind benders"),
		),
		SearchTitle: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search movies"),
		),
		SearchPerson: key.NewBinding(
			key.WithKeys("@"),
			key.WithHelp("@", "search people"),
		),

		// Paging
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "first page"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Watchlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watchlist"),
		),
		AddWatch: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to watchlist"),
		),
		RemoveWatch: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove from watchlist"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "play trailer"),
		),
		OpenIMDB: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open on imdb"),
		),
		OpenPoster: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "open poster"),
		),
	}
}

// Keys is the global key map
var Keys = DefaultKeyMap()
