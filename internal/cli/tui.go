package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// runTUI starts the interactive browser, running setup first when no
// TMDB credentials are configured.
func runTUI(cmd *cobra.Command, opts *options, start domain.BrowseMode) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}

	logger.Info("starting reel", "version", Version, "mode", start.String())

	if !cfg.IsConfigured() {
		fmt.Fprintln(cmd.OutOrStdout(), "No TMDB credentials configured.")
		if err := runSetup(cmd, opts.configPath, cfg, logger, "", true); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
	}

	styles.Apply(cfg.UI.Theme)

	watchlist, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer watchlist.Close()

	client := newClient(cfg, logger)
	manager := browse.NewManager(client, watchlist, logger)
	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	model := tui.NewModel(manager, launcher, tui.Options{
		InfiniteScroll: cfg.UI.InfiniteScroll,
		StartMode:      start,
		ImageBaseURL:   cfg.TMDB.ImageBaseURL,
		Logger:         logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("reel exited")
	return nil
}
