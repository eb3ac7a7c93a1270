package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
)

// fakeTMDB serves movie details for the given ids and a one-page
// popular list; any other path is a 404.
func fakeTMDB(t *testing.T, movies map[int]string) *httptest.Server {
	t.Helper()
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`))
			return
		}
		if r.URL.Path == "/movie/popular" {
			_, _ = w.Write([]byte(`{"page":1,"results":[],"total_pages":1,"total_results":0}`))
			return
		}
		for id, title := range movies {
			if r.URL.Path == fmt.Sprintf("/movie/%d", id) {
				fmt.Fprintf(w, `{"id":%d,"title":%q,"release_date":"2021-09-15","vote_average":7.8}`, id, title)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	t.Cleanup(s.Close)
	return s
}

// writeConfig writes a config file pointing at baseURL with its data
// and log under a temp directory, and returns the file path.
func writeConfig(t *testing.T, baseURL, apiKey string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`tmdb:
  api_key: %q
  base_url: %q
  timeout: 2s
storage:
  path: %q
logging:
  file: %q
`, apiKey, baseURL, filepath.Join(dir, "data"), filepath.Join(dir, "reel.log"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// execute runs the command tree with args and returns its combined output
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedWatchlist writes movies straight into the store behind configPath
func seedWatchlist(t *testing.T, configPath string, movies ...domain.Movie) {
	t.Helper()
	cfg, err := adapter.LoadConfig(configPath)
	require.NoError(t, err)
	s, err := store.NewWatchlistStore(cfg.Storage.Path, adapter.NullLogger())
	require.NoError(t, err)
	require.NoError(t, s.Save(movies))
	require.NoError(t, s.Close())
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "reel dev\n", out)
}

func TestWatchlistAddListRemove(t *testing.T) {
	srv := fakeTMDB(t, map[int]string{438631: "Dune"})
	config := writeConfig(t, srv.URL, "test-key")

	out, err := execute(t, "", "--config", config, "watchlist", "add", "438631")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Dune (2021)")

	out, err = execute(t, "", "--config", config, "watchlist", "add", "438631")
	require.NoError(t, err)
	assert.Contains(t, out, "already on the watchlist")

	out, err = execute(t, "", "--config", config, "watchlist", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "438631")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "7.8")

	out, err = execute(t, "", "--config", config, "watchlist", "rm", "438631")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Dune (2021)")

	out, err = execute(t, "", "--config", config, "watchlist", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Watchlist is empty")
}

func TestWatchlistAddUnknownMovie(t *testing.T) {
	srv := fakeTMDB(t, nil)
	config := writeConfig(t, srv.URL, "test-key")

	_, err := execute(t, "", "--config", config, "watchlist", "add", "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWatchlistAddKeepsFetchedMoviesWhenOneFails(t *testing.T) {
	srv := fakeTMDB(t, map[int]string{438631: "Dune", 603: "The Matrix"})
	config := writeConfig(t, srv.URL, "test-key")

	out, err := execute(t, "", "--config", config, "watchlist", "add", "438631", "99", "603")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to fetch movie 99")
	assert.Contains(t, out, "Added Dune (2021)")
	assert.Contains(t, out, "Added The Matrix (2021)")

	out, err = execute(t, "", "--config", config, "watchlist", "ls", "--json")
	require.NoError(t, err)
	var got []domain.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 438631, got[0].ID)
	assert.Equal(t, 603, got[1].ID)
}

func TestWatchlistRejectsInvalidIDs(t *testing.T) {
	config := writeConfig(t, "http://127.0.0.1:1", "test-key")

	_, err := execute(t, "", "--config", config, "watchlist", "rm", "dune")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid TMDB id "dune"`)
}

func TestWatchlistRemoveMissing(t *testing.T) {
	config := writeConfig(t, "http://127.0.0.1:1", "test-key")

	out, err := execute(t, "", "--config", config, "watchlist", "rm", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "7 is not on the watchlist")
}

func TestWatchlistListFilterJSON(t *testing.T) {
	config := writeConfig(t, "http://127.0.0.1:1", "test-key")
	seedWatchlist(t, config,
		domain.Movie{ID: 1, Title: "The Matrix"},
		domain.Movie{ID: 2, Title: "Arrival"},
		domain.Movie{ID: 3, Title: "Matrix Reloaded"},
	)

	out, err := execute(t, "", "--config", config, "watchlist", "ls", "--filter", "matrix", "--json")
	require.NoError(t, err)

	var got []domain.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	ids := make([]int, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []int{1, 3}, ids)
}

func TestWatchlistExportImport(t *testing.T) {
	source := writeConfig(t, "http://127.0.0.1:1", "test-key")
	seedWatchlist(t, source,
		domain.Movie{ID: 1, Title: "Heat"},
		domain.Movie{ID: 2, Title: "Ronin"},
	)
	file := filepath.Join(t.TempDir(), "watchlist.json")

	out, err := execute(t, "", "--config", source, "watchlist", "export", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 movies")

	target := writeConfig(t, "http://127.0.0.1:1", "test-key")
	seedWatchlist(t, target, domain.Movie{ID: 2, Title: "Ronin"})

	out, err = execute(t, "", "--config", target, "watchlist", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 movies (1 already present, 0 skipped)")

	out, err = execute(t, "", "--config", target, "watchlist", "ls", "--json")
	require.NoError(t, err)
	var got []domain.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Ronin", got[0].Title)
	assert.Equal(t, "Heat", got[1].Title)
}

func TestWatchlistImportReplace(t *testing.T) {
	config := writeConfig(t, "http://127.0.0.1:1", "test-key")
	seedWatchlist(t, config, domain.Movie{ID: 9, Title: "Old"})

	file := filepath.Join(t.TempDir(), "watchlist.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"id":5,"title":"New"},{"title":"no id"}]`), 0644))

	out, err := execute(t, "", "--config", config, "watchlist", "import", "--replace", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 movies (0 already present, 1 skipped)")

	out, err = execute(t, "", "--config", config, "watchlist", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "New")
	assert.NotContains(t, out, "Old")
}

func TestSetupVerifiesAndSavesKey(t *testing.T) {
	srv := fakeTMDB(t, nil)
	config := writeConfig(t, srv.URL, "")

	out, err := execute(t, "", "--config", config, "setup", "--api-key", "test-key")
	require.NoError(t, err)
	assert.Contains(t, out, "Key accepted")
	assert.Contains(t, out, "Configuration saved to "+config)

	cfg, err := adapter.LoadConfig(config)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.TMDB.APIKey)
	assert.Equal(t, srv.URL, cfg.TMDB.BaseURL)
	assert.True(t, cfg.IsConfigured())
}

func TestSetupRejectsInvalidKey(t *testing.T) {
	srv := fakeTMDB(t, nil)
	config := writeConfig(t, srv.URL, "")

	_, err := execute(t, "", "--config", config, "setup", "--api-key", "wrong")
	require.Error(t, err)
	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusUnauthorized, serverErr.Status)

	cfg, err := adapter.LoadConfig(config)
	require.NoError(t, err)
	assert.False(t, cfg.IsConfigured())
}

func TestSetupReadsKeyFromInput(t *testing.T) {
	config := writeConfig(t, "http://127.0.0.1:1", "")

	out, err := execute(t, "  typed-key  \n", "--config", config, "setup", "--no-verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to Reel!")

	cfg, err := adapter.LoadConfig(config)
	require.NoError(t, err)
	assert.Equal(t, "typed-key", cfg.TMDB.APIKey)
	assert.Empty(t, cfg.TMDB.AccessToken)
}

func TestSetupEmptyKey(t *testing.T) {
	config := writeConfig(t, "http://127.0.0.1:1", "")

	_, err := execute(t, "\n", "--config", config, "setup", "--no-verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestLooksLikeAccessToken(t *testing.T) {
	assert.False(t, looksLikeAccessToken("0123456789abcdef0123456789abcdef"))
	assert.True(t, looksLikeAccessToken("eyJhbGciOiJIUzI1NiJ9."+strings.Repeat("a", 80)+".signature"))
}

func TestMoods(t *testing.T) {
	out, err := execute(t, "", "moods")
	require.NoError(t, err)
	assert.Contains(t, out, "feel-good")
	assert.Contains(t, out, "Action Fix")
	assert.Contains(t, out, "Mind-bending mysteries")
}

func TestStartFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags startFlags
		want  domain.BrowseMode
	}{
		{"none", startFlags{}, domain.Popular()},
		{"mood slug", startFlags{mood: "action-fix"}, domain.Mood(domain.MoodActionFix)},
		{"mood name", startFlags{mood: "Mind Benders"}, domain.Mood(domain.MoodMindBenders)},
		{"title", startFlags{title: "  alien "}, domain.SearchByTitle("alien")},
		{"person", startFlags{person: "nolan"}, domain.SearchByPerson("nolan")},
		{"blank title", startFlags{title: "   "}, domain.Popular()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.mode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := (&startFlags{mood: "sad"}).mode()
	assert.Error(t, err)
}

func TestStartFlagsExclusive(t *testing.T) {
	_, err := execute(t, "", "--mood", "feel-good", "--search", "alien")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}
