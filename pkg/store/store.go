// Package store persists history and favorites as JSON documents in a
// per-user data directory.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Veraticus/regexlab/pkg/fsutil"
	"github.com/Veraticus/regexlab/pkg/interfaces"
	"github.com/Veraticus/regexlab/pkg/types"
)

const (
	HistoryFile   = "history.json"
	FavoritesFile = "favorites.json"

	// DefaultHistoryLimit is the number of history entries kept.
	DefaultHistoryLimit = 50

	// MaxTestStringLength bounds the stored test string, in characters.
	MaxTestStringLength = 100
)

// CorruptStoreError reports a store document that exists but cannot be parsed.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("store file %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}

// Store reads and writes the history and favorites documents. It performs
// each read-modify-write in one call but does not lock against other
// processes.
type Store struct {
	dir          string
	historyLimit int
	clock        interfaces.Clock
	logger       *log.Logger
}

// Ensure Store implements the dispatcher's persistence interface
var _ interfaces.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithHistoryLimit overrides the number of history entries kept.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(c interfaces.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithLogger sets the logger used to report recovered corruption.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a store rooted at dir. The directory is created on first write.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:          dir,
		historyLimit: DefaultHistoryLimit,
		clock:        interfaces.SystemClock{},
		logger:       log.New(os.Stderr, "regexlab: ", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// HistoryPath returns the path of the history document.
func (s *Store) HistoryPath() string {
	return filepath.Join(s.dir, HistoryFile)
}

// FavoritesPath returns the path of the favorites document.
func (s *Store) FavoritesPath() string {
	return filepath.Join(s.dir, FavoritesFile)
}

// LoadHistory returns the stored history, oldest first. A missing document
// yields an empty history; an unparseable one yields *CorruptStoreError.
func (s *Store) LoadHistory() ([]types.HistoryEntry, error) {
	var history []types.HistoryEntry
	if err := readJSON(s.HistoryPath(), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// AppendHistory adds entry, drops the oldest entries beyond the limit and
// writes the document before returning. A corrupt document is logged and
// replaced.
func (s *Store) AppendHistory(entry types.HistoryEntry) error {
	history, err := s.LoadHistory()
	if err != nil {
		var corrupt *CorruptStoreError
		if !errors.As(err, &corrupt) {
			return err
		}
		s.logger.Printf("warning: %v; starting a new history", err)
		history = nil
	}

	if entry.Timestamp == "" {
		entry.Timestamp = s.clock.Now().Format(types.TimestampLayout)
	}
	entry.TestString = truncate(entry.TestString, MaxTestStringLength)

	history = append(history, entry)
	if len(history) > s.historyLimit {
		history = history[len(history)-s.historyLimit:]
	}

	return s.writeJSON(s.HistoryPath(), history)
}

// LoadFavorites returns the stored favorites keyed by name.
func (s *Store) LoadFavorites() (map[string]types.FavoriteEntry, error) {
	favorites := make(map[string]types.FavoriteEntry)
	if err := readJSON(s.FavoritesPath(), &favorites); err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = make(map[string]types.FavoriteEntry)
	}
	return favorites, nil
}

// AddFavorite stores pattern under name, silently replacing any existing
// favorite with that name.
func (s *Store) AddFavorite(name, pattern, description string) error {
	favorites, err := s.LoadFavorites()
	if err != nil {
		var corrupt *CorruptStoreError
		if !errors.As(err, &corrupt) {
			return err
		}
		s.logger.Printf("warning: %v; starting new favorites", err)
		favorites = make(map[string]types.FavoriteEntry)
	}

	favorites[name] = types.FavoriteEntry{
		Pattern:     pattern,
		Description: description,
		Created:     s.clock.Now().Format(types.TimestampLayout),
	}

	return s.writeJSON(s.FavoritesPath(), favorites)
}

// ListFavorites returns all favorites ordered by creation time, oldest
// first, with ties broken by name. A corrupt document is logged and treated
// as empty.
func (s *Store) ListFavorites() ([]types.Favorite, error) {
	favorites, err := s.LoadFavorites()
	if err != nil {
		var corrupt *CorruptStoreError
		if !errors.As(err, &corrupt) {
			return nil, err
		}
		s.logger.Printf("warning: %v; ignoring favorites", err)
		return nil, nil
	}

	list := make([]types.Favorite, 0, len(favorites))
	for name, entry := range favorites {
		list = append(list, types.Favorite{Name: name, FavoriteEntry: entry})
	}
	sort.Slice(list, func(i, j int) bool {
		ti, erri := ParseTimestamp(list[i].Created)
		tj, errj := ParseTimestamp(list[j].Created)
		if erri == nil && errj == nil && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		if erri != nil || errj != nil {
			if list[i].Created != list[j].Created {
				return list[i].Created < list[j].Created
			}
		}
		return list[i].Name < list[j].Name
	})

	return list, nil
}

// Favorite looks up a single favorite. A corrupt document is logged and
// treated as empty.
func (s *Store) Favorite(name string) (types.FavoriteEntry, bool, error) {
	favorites, err := s.LoadFavorites()
	if err != nil {
		var corrupt *CorruptStoreError
		if !errors.As(err, &corrupt) {
			return types.FavoriteEntry{}, false, err
		}
		s.logger.Printf("warning: %v; ignoring favorites", err)
		return types.FavoriteEntry{}, false, nil
	}
	entry, ok := favorites[name]
	return entry, ok, nil
}

// ParseTimestamp parses a stored timestamp. Both the tool's own layout and
// RFC 3339 are accepted.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(types.TimestampLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func readJSON(path string, v any) error {
	// #nosec G304 - The path is built from the configured data directory
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptStoreError{Path: path, Err: err}
	}
	return nil
}

func (s *Store) writeJSON(path string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	return fsutil.WriteAtomic(path, buf.Bytes(), 0o644)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
