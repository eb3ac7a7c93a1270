package tui

// Message types for the TUI. List and detail results arrive as browse
// messages and are folded in by the manager.

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TrailerLaunchedMsg signals that the player (or browser) was started
type TrailerLaunchedMsg struct {
	Title string
}

// URLOpenedMsg signals that a web page was handed to the system opener
type URLOpenedMsg struct {
	URL string
}

// ClearStatusMsg clears the footer status line
type ClearStatusMsg struct{}
