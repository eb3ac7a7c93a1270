// Package cli implements the reel command line.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tmdb"
)

// Version is set at build time via -ldflags
var Version = "dev"

// options holds the persistent flags shared by every command
type options struct {
	configPath string
}

// startFlags pick the list the browser opens on
type startFlags struct {
	mood   string
	title  string
	person string
}

// NewRootCmd builds the reel command tree. Running it without a
// subcommand starts the terminal UI.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	start := &startFlags{}

	cmd := &cobra.Command{
		Use:   "reel",
		Short: "Discover movies from the terminal",
		Long: `Reel browses popular movies, mood picks and TMDB search results,
and keeps a local watchlist of the movies you want to see.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := start.mode()
			if err != nil {
				return err
			}
			return runTUI(cmd, opts, mode)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.config/reel/config.yaml)")
	cmd.Flags().StringVarP(&start.mood, "mood", "m", "", "open on a mood (see 'reel moods')")
	cmd.Flags().StringVarP(&start.title, "search", "s", "", "open on a movie title search")
	cmd.Flags().StringVarP(&start.person, "person", "p", "", "open on a person search")
	cmd.MarkFlagsMutuallyExclusive("mood", "search", "person")

	cmd.AddCommand(
		newSetupCmd(opts),
		newWatchlistCmd(opts),
		newMoodsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// mode returns the browse mode the flags select, Popular when none is set
func (f *startFlags) mode() (domain.BrowseMode, error) {
	switch {
	case f.mood != "":
		mood, err := domain.ParseMood(f.mood)
		if err != nil {
			return domain.BrowseMode{}, err
		}
		return domain.Mood(mood), nil
	case strings.TrimSpace(f.title) != "":
		return domain.SearchByTitle(f.title), nil
	case strings.TrimSpace(f.person) != "":
		return domain.SearchByPerson(f.person), nil
	default:
		return domain.Popular(), nil
	}
}

// Execute runs the root command with os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the configuration and installs the file logger. A logger
// that cannot be opened falls back to discarding output.
func (o *options) load() (*adapter.Config, *slog.Logger, error) {
	cfg, err := adapter.LoadConfig(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openStore opens the watchlist database in the configured directory
func openStore(cfg *adapter.Config, logger *slog.Logger) (*store.WatchlistStore, error) {
	s, err := store.NewWatchlistStore(adapter.ExpandPath(cfg.Storage.Path), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist: %w", err)
	}
	return s, nil
}

// newClient builds a TMDB client from the configuration
func newClient(cfg *adapter.Config, logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(tmdb.Options{
		BaseURL:     cfg.TMDB.BaseURL,
		APIKey:      cfg.TMDB.APIKey,
		AccessToken: cfg.TMDB.AccessToken,
		Language:    cfg.TMDB.Language,
		Timeout:     cfg.TMDB.Timeout,
		RateLimit:   cfg.TMDB.RateLimit,
		RateBurst:   cfg.TMDB.RateBurst,
	}, logger)
}
