package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Launcher opens trailers and web pages outside the terminal
type Launcher interface {
	PlayTrailer(url string) error
	OpenURL(url string) error
}

// PlayTrailerCmd starts the trailer in the configured player
func PlayTrailerCmd(l Launcher, title, url string) tea.Cmd {
	return func() tea.Msg {
		if err := l.PlayTrailer(url); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return TrailerLaunchedMsg{Title: title}
	}
}

// OpenURLCmd opens a web page with the system handler
func OpenURLCmd(l Launcher, url string) tea.Cmd {
	return func() tea.Msg {
		if err := l.OpenURL(url); err != nil {
			return ErrMsg{Err: err, Context: "opening link"}
		}
		return URLOpenedMsg{URL: url}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
