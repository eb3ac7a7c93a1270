package store

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/google/renameio/v2"

	"github.com/mmcdole/reel/internal/domain"
)

// Export writes movies to path as an indented JSON array. The file is
// replaced atomically: readers see the old content or the new, never a
// partial write.
func Export(path string, movies []domain.Movie) error {
	if movies == nil {
		movies = []domain.Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("create pending export file: %w", err)
	}
	defer pendingFile.Cleanup()

	if _, err := pendingFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write export data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace export file: %w", err)
	}
	return nil
}

// ImportResult reports what Import read from a file
type ImportResult struct {
	Movies  []domain.Movie
	Skipped int // malformed, id-less, or duplicate entries
}

// Import reads a watchlist file written by Export. Entries that fail to
// decode or repeat an earlier id are skipped rather than failing the
// whole import; only an unreadable file or a non-array payload is an error.
func Import(path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read import file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ImportResult{}, fmt.Errorf("import file is not a JSON array: %w", err)
	}

	var result ImportResult
	seen := make(map[int]struct{}, len(raw))
	for _, entry := range raw {
		var m domain.Movie
		if err := json.Unmarshal(entry, &m); err != nil || m.ID <= 0 {
			result.Skipped++
			continue
		}
		if _, ok := seen[m.ID]; ok {
			result.Skipped++
			continue
		}
		seen[m.ID] = struct{}{}
		result.Movies = append(result.Movies, m)
	}
	return result, nil
}
