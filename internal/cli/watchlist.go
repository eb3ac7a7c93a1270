package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/store"
)

func newWatchlistCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"wl"},
		Short:   "Manage the watchlist",
	}
	cmd.AddCommand(
		newWatchlistListCmd(opts),
		newWatchlistAddCmd(opts),
		newWatchlistRemoveCmd(opts),
		newWatchlistExportCmd(opts),
		newWatchlistImportCmd(opts),
	)
	return cmd
}

// withStore loads the config, opens the watchlist and calls fn
func withStore(opts *options, fn func(s *store.WatchlistStore) error) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func newWatchlistListCmd(opts *options) *cobra.Command {
	var filter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List watchlist movies",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(s *store.WatchlistStore) error {
				movies := search.RankWatchlist(filter, s.Load())
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), movies)
				}
				writeTable(cmd.OutOrStdout(), movies)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "fuzzy filter on title")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newWatchlistAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <tmdb-id>...",
		Short: "Add movies by TMDB id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			s, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			client := newClient(cfg, logger)
			out := cmd.OutOrStdout()
			movies := s.Load()
			added := 0

			// A failed id does not stop the others; every fetched movie is saved
			var errs []error
			for _, id := range ids {
				if indexOf(movies, id) >= 0 {
					fmt.Fprintf(out, "%d is already on the watchlist\n", id)
					continue
				}

				ctx, cancel := context.WithTimeout(cmd.Context(), cfg.TMDB.Timeout)
				detail, err := client.MovieDetail(ctx, id)
				cancel()
				if err != nil {
					errs = append(errs, fmt.Errorf("failed to fetch movie %d: %w", id, err))
					continue
				}

				movies = append(movies, detail.Movie)
				added++
				fmt.Fprintf(out, "Added %s\n", label(detail.Movie))
			}

			if added > 0 {
				if err := s.Save(movies); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}

func newWatchlistRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <tmdb-id>...",
		Aliases: []string{"remove"},
		Short:   "Remove movies by TMDB id",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			return withStore(opts, func(s *store.WatchlistStore) error {
				out := cmd.OutOrStdout()
				movies := s.Load()
				removed := 0

				for _, id := range ids {
					i := indexOf(movies, id)
					if i < 0 {
						fmt.Fprintf(out, "%d is not on the watchlist\n", id)
						continue
					}
					fmt.Fprintf(out, "Removed %s\n", label(movies[i]))
					movies = append(movies[:i], movies[i+1:]...)
					removed++
				}

				if removed == 0 {
					return nil
				}
				return s.Save(movies)
			})
		},
	}
}

func newWatchlistExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the watchlist to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(s *store.WatchlistStore) error {
				movies := s.Load()
				if err := store.Export(args[0], movies); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d movies to %s\n", len(movies), args[0])
				return nil
			})
		},
	}
}

func newWatchlistImportCmd(opts *options) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge movies from a JSON file into the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := store.Import(args[0])
			if err != nil {
				return err
			}

			return withStore(opts, func(s *store.WatchlistStore) error {
				var movies []domain.Movie
				if !replace {
					movies = s.Load()
				}

				added, present := 0, 0
				for _, m := range result.Movies {
					if indexOf(movies, m.ID) >= 0 {
						present++
						continue
					}
					movies = append(movies, m)
					added++
				}

				if err := s.Save(movies); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movies (%d already present, %d skipped)\n",
					added, present, result.Skipped)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the watchlist instead of merging")
	return cmd
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid TMDB id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func indexOf(movies []domain.Movie, id int) int {
	for i, m := range movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// label formats a movie as "Title (Year)"
func label(m domain.Movie) string {
	if y := m.Year(); y > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, y)
	}
	return m.Title
}

func writeJSON(w io.Writer, movies []domain.Movie) error {
	if movies == nil {
		movies = []domain.Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode watchlist: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTable(w io.Writer, movies []domain.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "Watchlist is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tRATING")
	for _, m := range movies {
		year := ""
		if y := m.Year(); y > 0 {
			year = strconv.Itoa(y)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.ID, m.Title, year, m.FormattedRating())
	}
	tw.Flush()
}
