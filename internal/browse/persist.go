package browse

import (
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
)

// writer serialises watchlist saves. Each save carries the generation of
// the mutation that produced it; a generation at or below the last one
// attempted is dropped, so commands that run out of order never put an
// older snapshot on disk.
type writer struct {
	store  domain.WatchlistStore
	logger *slog.Logger

	mu        sync.Mutex
	attempted uint64
}

func (w *writer) write(gen uint64, movies []domain.Movie) (skipped bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen <= w.attempted {
		w.logger.Debug("dropping superseded watchlist save", "generation", gen, "attempted", w.attempted)
		return true, nil
	}
	w.attempted = gen

	if err := w.store.Save(movies); err != nil {
		w.logger.Error("watchlist write-through failed", "generation", gen, "error", err)
		return false, err
	}
	return false, nil
}

// saveCmd persists a snapshot taken at mutation time
func (w *writer) saveCmd(gen uint64, snapshot []domain.Movie) tea.Cmd {
	return func() tea.Msg {
		skipped, err := w.write(gen, snapshot)
		return WatchlistSavedMsg{Generation: gen, Skipped: skipped, Err: err}
	}
}
