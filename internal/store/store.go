package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/reel/internal/domain"
)

const dbFile = "reel.db"

// Bucket and key names
var (
	bucketWatchlist = []byte("watchlist")
	keyWatchlist    = []byte("movieWatchlist")
)

// WatchlistStore implements domain.WatchlistStore using BoltDB.
// The whole watchlist lives under a single key so every Save is one
// transaction.
type WatchlistStore struct {
	db     *bolt.DB
	mu     sync.RWMutex // protects cache
	cache  []byte       // last payload written or read
	logger *slog.Logger
}

// NewWatchlistStore opens (or creates) the watchlist database in dir.
// An empty dir gives a memory-only store.
func NewWatchlistStore(dir string, logger *slog.Logger) (*WatchlistStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		// Memory-only mode (no persistence)
		return &WatchlistStore{logger: logger}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open bolt db: %v", domain.ErrStorage, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWatchlist)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	logger.Debug("watchlist store opened", "path", dbPath)
	return &WatchlistStore{db: db, logger: logger}, nil
}

// Path returns the database file, or "" for a memory-only store
func (s *WatchlistStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

func (s *WatchlistStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the persisted watchlist. Anything that cannot be read or
// decoded is logged and treated as an empty list.
func (s *WatchlistStore) Load() []domain.Movie {
	data, err := s.read()
	if err != nil {
		s.logger.Warn("watchlist unreadable, starting empty", "error", err)
		return []domain.Movie{}
	}
	if data == nil {
		return []domain.Movie{}
	}

	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		s.logger.Warn("watchlist corrupt, starting empty", "error", err, "bytes", len(data))
		return []domain.Movie{}
	}
	return dedupe(movies)
}

// Save replaces the persisted watchlist with movies
func (s *WatchlistStore) Save(movies []domain.Movie) error {
	if movies == nil {
		movies = []domain.Movie{}
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrStorage, err)
	}

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketWatchlist)
			if b == nil {
				return fmt.Errorf("bucket %q missing", bucketWatchlist)
			}
			return b.Put(keyWatchlist, data)
		})
		if err != nil {
			s.logger.Error("watchlist save failed", "error", err)
			return fmt.Errorf("%w: %v", domain.ErrStorage, err)
		}
	}

	s.mu.Lock()
	s.cache = data
	s.mu.Unlock()

	s.logger.Debug("watchlist saved", "entries", len(movies))
	return nil
}

// read returns the raw payload, nil when nothing has been saved yet
func (s *WatchlistStore) read() ([]byte, error) {
	s.mu.RLock()
	if s.cache != nil {
		data := s.cache
		s.mu.RUnlock()
		return data, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWatchlist)
		if b == nil {
			return nil
		}
		if v := b.Get(keyWatchlist); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if data != nil {
		s.mu.Lock()
		s.cache = data
		s.mu.Unlock()
	}
	return data, nil
}

// dedupe keeps the first entry for each id and drops entries without one
func dedupe(movies []domain.Movie) []domain.Movie {
	seen := make(map[int]struct{}, len(movies))
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.ID <= 0 {
			continue
		}
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Compile-time interface check
var _ domain.WatchlistStore = (*WatchlistStore)(nil)
